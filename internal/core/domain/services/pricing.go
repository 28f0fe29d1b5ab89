package services

import (
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// Pricing constants in integer cents. All money on the platform is integer
// cents; totals are floored, never rounded up.
const (
	// BaseBagCents is the price of washing one bag.
	BaseBagCents int64 = 3500

	// ExpressFeeCents is the flat surcharge for same-day turnaround.
	ExpressFeeCents int64 = 2000

	// FragranceFreeCents is the add-on fee for fragrance-free detergent.
	FragranceFreeCents int64 = 100

	// ShirtsOnHangersCents is the add-on fee for returning shirts on hangers.
	ShirtsOnHangersCents int64 = 500

	// ExtraRinseCents is the add-on fee for an extra rinse cycle.
	ExtraRinseCents int64 = 150
)

// PreferenceCost is the priced portion of a customer preference (soap choice,
// wash temperature, dry temperature). Zero-cost preferences are valid
// defaults and produce no line item.
type PreferenceCost struct {
	Name  string
	Cents int64
}

// AddOns holds the flat-fee extras a customer can enable on an order.
type AddOns struct {
	FragranceFree   bool
	ShirtsOnHangers bool
	ExtraRinse      bool
}

// PriceQuote is the itemized result of pricing an order. TotalCents always
// equals the sum of the line items, so a persisted order can prove its total
// from its stored inputs.
type PriceQuote struct {
	LineItems  []order.LineItem
	TotalCents int64
}

// PriceCalculator is a pure domain service that computes an order's price
// breakdown from its inputs. It performs no I/O and is deterministic: the
// same inputs always produce the same quote.
//
// Price composition:
//   - base: bag count times BaseBagCents
//   - express surcharge if requested
//   - each priced preference at its own cost
//   - each enabled add-on at its flat fee
//   - a resolved percentage-off promotion scales the total, floored to the cent
//
// The promotion is passed in already resolved; an unresolved promo code is a
// no-op handled by the caller, not an error here.
type PriceCalculator struct{}

// NewPriceCalculator creates a PriceCalculator.
func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Price computes the itemized breakdown and total for an order.
// Returns a validation error for a bag count below 1 or a negative
// preference cost; every other input combination prices successfully.
func (c PriceCalculator) Price(
	bagCount int,
	isExpress bool,
	preferences []PreferenceCost,
	addOns AddOns,
	promo *promotion.Promotion,
) (PriceQuote, error) {
	if bagCount < 1 {
		return PriceQuote{}, errs.NewValueIsInvalidErrorWithCause("bag count",
			fmt.Errorf("%d is not at least 1", bagCount))
	}

	items := make([]order.LineItem, 0, 4+len(preferences))

	items = append(items, order.LineItem{
		Label:       fmt.Sprintf("%d bag wash", bagCount),
		AmountCents: int64(bagCount) * BaseBagCents,
	})

	if isExpress {
		items = append(items, order.LineItem{Label: "express service", AmountCents: ExpressFeeCents})
	}

	for _, pref := range preferences {
		if pref.Cents < 0 {
			return PriceQuote{}, errs.NewValueIsInvalidErrorWithCause("preference cost",
				fmt.Errorf("%q costs %d cents", pref.Name, pref.Cents))
		}
		if pref.Cents == 0 {
			continue
		}
		items = append(items, order.LineItem{Label: pref.Name, AmountCents: pref.Cents})
	}

	if addOns.FragranceFree {
		items = append(items, order.LineItem{Label: "fragrance-free", AmountCents: FragranceFreeCents})
	}
	if addOns.ShirtsOnHangers {
		items = append(items, order.LineItem{Label: "shirts on hangers", AmountCents: ShirtsOnHangersCents})
	}
	if addOns.ExtraRinse {
		items = append(items, order.LineItem{Label: "extra rinse", AmountCents: ExtraRinseCents})
	}

	total := order.SumLineItems(items)

	if promo != nil && promo.IsActive() {
		discounted := promo.Apply(total)
		if discounted != total {
			items = append(items, order.LineItem{
				Label:       fmt.Sprintf("promo %s", promo.Code()),
				AmountCents: discounted - total,
			})
			total = discounted
		}
	}

	return PriceQuote{LineItems: items, TotalCents: total}, nil
}
