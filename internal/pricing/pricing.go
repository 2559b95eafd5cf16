// Package pricing derives delivery fees and order totals from a cart
// subtotal. All amounts are whole rupees.
package pricing

import "github.com/urbanwear/storefront/internal/config"

type Quote struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

type Calculator struct {
	threshold int64
	flatFee   int64
}

func NewCalculator(cfg config.Pricing) *Calculator {
	return &Calculator{
		threshold: cfg.FreeShippingThreshold,
		flatFee:   cfg.FlatDeliveryFee,
	}
}

// DeliveryFee is zero at and above the free-shipping threshold.
func (c *Calculator) DeliveryFee(subtotal int64) int64 {
	if subtotal >= c.threshold {
		return 0
	}
	return c.flatFee
}

// QuoteFor computes the full price breakdown. Crossing the threshold
// drops the fee to zero, so total(4999)=5249 and total(5000)=5000; the
// total is still non-decreasing in the subtotal.
func (c *Calculator) QuoteFor(subtotal int64) Quote {
	fee := c.DeliveryFee(subtotal)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}
