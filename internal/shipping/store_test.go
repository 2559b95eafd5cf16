package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwear/storefront/internal/domain"
)

func newDraft(orderNumber string) *domain.OrderDraft {
	return &domain.OrderDraft{
		OrderNumber:      orderNumber,
		CustomerName:     "Ahmed Khan",
		CustomerPhone:    "+92 300 1234567",
		Address:          "123 Main Street, Gulberg",
		City:             "Lahore",
		ExpectedDelivery: "2026-01-05",
		Items: []domain.LineItem{
			{ProductID: 1, Name: "Urban Hoodie", UnitPrice: 2850, Quantity: 1},
		},
	}
}

func TestNewStore_SeededWithDemoRecords(t *testing.T) {
	store := NewStore()

	records := store.List()
	require.Len(t, records, 5)
	assert.Equal(t, "URB-2025-001", records[0].OrderNumber)
	assert.Equal(t, domain.ShippingProcessing, records[0].Status)
	assert.Equal(t, 100, records[3].Progress)
}

func TestIngest_CreatesProcessingRecord(t *testing.T) {
	store := NewStore()

	record := store.Ingest(newDraft("URB-654321"))

	assert.Equal(t, domain.ShippingProcessing, record.Status)
	assert.Equal(t, 20, record.Progress)
	assert.Equal(t, "TRK-654321", record.TrackingNumber)
	assert.Equal(t, "Ahmed Khan", record.Address.Name)

	// New record goes to the front of the list.
	records := store.List()
	require.Len(t, records, 6)
	assert.Equal(t, "URB-654321", records[0].OrderNumber)
}

func TestIngest_DedupesByOrderNumber(t *testing.T) {
	store := NewStore()

	store.Ingest(newDraft("URB-654321"))
	store.Ingest(newDraft("URB-654321"))

	assert.Len(t, store.List(), 6)
}

func TestAdvance_WalksForward(t *testing.T) {
	store := NewStore()
	store.Ingest(newDraft("URB-654321"))

	record, err := store.Advance("URB-654321", domain.ShippingShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.ShippingShipped, record.Status)
	assert.Equal(t, 60, record.Progress)

	record, err = store.Advance("URB-654321", domain.ShippingOutForDelivery)
	require.NoError(t, err)
	assert.Equal(t, 85, record.Progress)

	record, err = store.Advance("URB-654321", domain.ShippingDelivered)
	require.NoError(t, err)
	assert.Equal(t, 100, record.Progress)
	assert.True(t, record.Status.IsTerminal())
}

func TestAdvance_RejectsRegression(t *testing.T) {
	store := NewStore()

	// URB-2025-003 is seeded at out_for_delivery.
	_, err := store.Advance("URB-2025-003", domain.ShippingShipped)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	_, err = store.Advance("URB-2025-003", domain.ShippingProcessing)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestAdvance_RejectsSkipAhead(t *testing.T) {
	store := NewStore()
	store.Ingest(newDraft("URB-654321"))

	_, err := store.Advance("URB-654321", domain.ShippingDelivered)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// The record is untouched after the rejected transition.
	record, getErr := store.Get("URB-654321")
	require.NoError(t, getErr)
	assert.Equal(t, domain.ShippingProcessing, record.Status)
}

func TestAdvance_DeliveredIsTerminal(t *testing.T) {
	store := NewStore()

	_, err := store.Advance("URB-2025-004", domain.ShippingProcessing)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestAdvance_UnknownOrder(t *testing.T) {
	store := NewStore()

	_, err := store.Advance("URB-000000", domain.ShippingShipped)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
