// Package promotion provides the read model for percent-off promo codes.
// Promotions are maintained by an external marketing collaborator; the core
// only resolves codes at pricing time. A code that does not resolve is a
// no-op on the price, never an error.
package promotion

import (
	"errors"
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// ErrPromotionIsNotConstructed is returned when a Promotion instance was not
// created through the NewPromotion factory method.
var ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")

// Promotion is a percentage-off pricing rule identified by its code.
// The percentage is an integer in [1, 100]; applying it scales the order
// total and floors to the nearest cent.
type Promotion struct {
	code       string
	percentOff int
	active     bool

	isConstructed bool
}

// NewPromotion creates a validated Promotion.
// The code must be non-empty and the percentage must be within [1, 100].
func NewPromotion(code string, percentOff int, active bool) (*Promotion, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("promotion code")
	}

	if percentOff < 1 || percentOff > 100 {
		return nil, errs.NewValueIsOutOfRangeError("percent off", percentOff, 1, 100)
	}

	return &Promotion{
		code:          code,
		percentOff:    percentOff,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the Promotion was created through NewPromotion.
func (p *Promotion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromotionIsNotConstructed
	}
	return nil
}

// Code returns the promo code customers enter.
func (p *Promotion) Code() string {
	return p.code
}

// PercentOff returns the discount percentage in [1, 100].
func (p *Promotion) PercentOff() int {
	return p.percentOff
}

// IsActive reports whether the promotion can currently be applied.
func (p *Promotion) IsActive() bool {
	return p.active
}

// Apply scales totalCents down by the promotion percentage, flooring to the
// nearest cent. Inactive promotions leave the total unchanged.
func (p *Promotion) Apply(totalCents int64) int64 {
	if !p.active {
		return totalCents
	}
	discounted := totalCents * int64(100-p.percentOff) / 100
	if discounted < 0 {
		return 0
	}
	return discounted
}

// String describes the promotion for logs.
func (p *Promotion) String() string {
	return fmt.Sprintf("%s (%d%% off)", p.code, p.percentOff)
}
