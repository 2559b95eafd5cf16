// Package shipping tracks post-order delivery state. Records only move
// forward through the status sequence; there is no cancellation and no
// way to skip a stage.
package shipping

import (
	"errors"
	"sync"

	"github.com/urbanwear/storefront/internal/domain"
)

var (
	ErrRecordNotFound    = errors.New("shipping record not found")
	ErrIllegalTransition = errors.New("illegal shipping status transition")
)

type Store struct {
	mu      sync.RWMutex
	records []*domain.ShippingRecord // newest first
}

// NewStore creates a store pre-loaded with the demo shipment records
// the tracking view shows alongside real orders.
func NewStore() *Store {
	return &Store{records: seedRecords()}
}

// List returns all records, newest first.
func (s *Store) List() []domain.ShippingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ShippingRecord, 0, len(s.records))
	for _, r := range s.records {
		result = append(result, *r)
	}
	return result
}

func (s *Store) Get(orderNumber string) (domain.ShippingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.OrderNumber == orderNumber {
			return *r, nil
		}
	}
	return domain.ShippingRecord{}, ErrRecordNotFound
}

// Ingest creates a tracking record for a freshly placed order, at the
// start of the lifecycle. Ingesting the same order number twice is a
// no-op returning the existing record.
func (s *Store) Ingest(draft *domain.OrderDraft) domain.ShippingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.OrderNumber == draft.OrderNumber {
			return *r
		}
	}

	items := make([]domain.ShippingItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, domain.ShippingItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			ImageURL: item.ImageURL,
		})
	}

	record := &domain.ShippingRecord{
		ID:                draft.OrderNumber,
		OrderNumber:       draft.OrderNumber,
		Status:            domain.ShippingProcessing,
		EstimatedDelivery: draft.ExpectedDelivery,
		TrackingNumber:    trackingNumber(draft.OrderNumber),
		Progress:          domain.ShippingProcessing.DefaultProgress(),
		Items:             items,
		Address: domain.ShippingAddress{
			Name:    draft.CustomerName,
			Address: draft.Address,
			City:    draft.City,
			Phone:   draft.CustomerPhone,
		},
	}

	s.records = append([]*domain.ShippingRecord{record}, s.records...)
	return *record
}

// Advance moves a record to the next status. Regressions and
// skip-ahead requests are rejected.
func (s *Store) Advance(orderNumber string, next domain.ShippingStatus) (domain.ShippingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.OrderNumber != orderNumber {
			continue
		}
		if !r.Status.CanTransitionTo(next) {
			return domain.ShippingRecord{}, ErrIllegalTransition
		}
		r.Status = next
		r.Progress = next.DefaultProgress()
		return *r, nil
	}
	return domain.ShippingRecord{}, ErrRecordNotFound
}

func trackingNumber(orderNumber string) string {
	suffix := orderNumber
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "TRK-" + suffix
}

func seedRecords() []*domain.ShippingRecord {
	return []*domain.ShippingRecord{
		{
			ID: "1", OrderNumber: "URB-2025-001", Status: domain.ShippingProcessing,
			EstimatedDelivery: "Jan 05, 2026", TrackingNumber: "TRK123456789", Progress: 25,
			Items: []domain.ShippingItem{
				{Name: "Urban Hoodie", Quantity: 1},
				{Name: "Cargo Pants", Quantity: 1},
			},
			Address: domain.ShippingAddress{Name: "Ahmed Khan", Address: "123 Main Street, Gulberg", City: "Lahore, Pakistan", Phone: "+92 300 1234567"},
		},
		{
			ID: "2", OrderNumber: "URB-2025-002", Status: domain.ShippingShipped,
			EstimatedDelivery: "Jan 02, 2026", TrackingNumber: "TRK987654321", Progress: 60,
			Items: []domain.ShippingItem{
				{Name: "Premium T-Shirt", Quantity: 2},
			},
			Address: domain.ShippingAddress{Name: "Sara Ahmed", Address: "456 Park Avenue, DHA", City: "Karachi, Pakistan", Phone: "+92 301 7654321"},
		},
		{
			ID: "3", OrderNumber: "URB-2025-003", Status: domain.ShippingOutForDelivery,
			EstimatedDelivery: "Dec 31, 2025", TrackingNumber: "TRK456789123", Progress: 85,
			Items: []domain.ShippingItem{
				{Name: "Urban Jacket", Quantity: 1},
				{Name: "Denim Jeans", Quantity: 1},
				{Name: "Sneakers", Quantity: 1},
			},
			Address: domain.ShippingAddress{Name: "Muhammad Ali", Address: "789 Commercial Area, Phase 5", City: "Islamabad, Pakistan", Phone: "+92 302 1122334"},
		},
		{
			ID: "4", OrderNumber: "URB-2025-004", Status: domain.ShippingDelivered,
			EstimatedDelivery: "Dec 28, 2025", TrackingNumber: "TRK321654987", Progress: 100,
			Items: []domain.ShippingItem{
				{Name: "Casual Shirt", Quantity: 1},
			},
			Address: domain.ShippingAddress{Name: "Fatima Bibi", Address: "321 Residential Street, Cantt", City: "Rawalpindi, Pakistan", Phone: "+92 303 4455667"},
		},
		{
			ID: "5", OrderNumber: "URB-2025-005", Status: domain.ShippingShipped,
			EstimatedDelivery: "Jan 2, 2026", TrackingNumber: "TRK654987321", Progress: 45,
			Items: []domain.ShippingItem{
				{Name: "Winter Hoodie", Quantity: 1},
				{Name: "Track Pants", Quantity: 1},
			},
			Address: domain.ShippingAddress{Name: "Hassan Raza", Address: "654 Business District, Mall Road", City: "Peshawar, Pakistan", Phone: "+92 304 7788990"},
		},
	}
}
