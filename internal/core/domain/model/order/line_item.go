package order

import (
	"fmt"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"
)

// LineItem is one component of an order's price breakdown: the per-bag base,
// the express surcharge, priced preferences, add-ons, and the promo discount.
// Amounts are integer cents; the discount line is the only one allowed to be
// negative. The total of all line items always reproduces the order total.
type LineItem struct {
	Label       string
	AmountCents int64
}

// NewLineItem creates a price breakdown component.
// The label must be non-empty.
func NewLineItem(label string, amountCents int64) (LineItem, error) {
	if label == "" {
		return LineItem{}, errs.NewValueIsRequiredError("line item label")
	}
	return LineItem{Label: label, AmountCents: amountCents}, nil
}

// SumLineItems returns the total of all component amounts in cents.
func SumLineItems(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.AmountCents
	}
	return total
}

// validateLineItems checks that every component is well formed and that the
// breakdown reproduces the stated total. The stored total is never an
// independently mutable field.
func validateLineItems(items []LineItem, totalCents int64) error {
	for _, item := range items {
		if item.Label == "" {
			return errs.NewValueIsRequiredError("line item label")
		}
	}

	if sum := SumLineItems(items); sum != totalCents {
		return errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("line items sum to %d cents but total is %d cents", sum, totalCents))
	}

	return nil
}
