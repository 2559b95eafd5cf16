package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urbanwear/storefront/internal/config"
)

func newTestCalculator() *Calculator {
	return NewCalculator(config.Pricing{
		FreeShippingThreshold: 5000,
		FlatDeliveryFee:       250,
	})
}

func TestDeliveryFee_ThresholdCliff(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, int64(250), calc.DeliveryFee(4999))
	assert.Equal(t, int64(0), calc.DeliveryFee(5000))
	assert.Equal(t, int64(0), calc.DeliveryFee(5001))
	assert.Equal(t, int64(250), calc.DeliveryFee(0))
}

func TestQuoteFor_ExactCliffValues(t *testing.T) {
	calc := newTestCalculator()

	// The cliff is deliberate: total(4999) > total(5000) is NOT true,
	// totals stay monotonic even though the fee drops to zero.
	assert.Equal(t, int64(5249), calc.QuoteFor(4999).Total)
	assert.Equal(t, int64(5000), calc.QuoteFor(5000).Total)
}

func TestQuoteFor_TotalMonotonic(t *testing.T) {
	calc := newTestCalculator()

	var prev int64 = -1
	for subtotal := int64(4990); subtotal <= 5010; subtotal++ {
		total := calc.QuoteFor(subtotal).Total
		assert.GreaterOrEqual(t, total, prev, "total regressed at subtotal %d", subtotal)
		prev = total
	}
}

func TestQuoteFor_FreeShippingOrder(t *testing.T) {
	calc := newTestCalculator()

	// cart = [{2850 x1}, {1950 x2}] -> subtotal 6750, free delivery
	q := calc.QuoteFor(6750)
	assert.Equal(t, int64(6750), q.Subtotal)
	assert.Equal(t, int64(0), q.DeliveryFee)
	assert.Equal(t, int64(6750), q.Total)
}
