// Package returns holds return/refund requests. This lifecycle is
// deliberately disconnected from the shipping records: the two views
// run on independent datasets and merging them would change behavior.
package returns

import (
	"errors"
	"sync"

	"github.com/urbanwear/storefront/internal/domain"
)

var (
	ErrRequestNotFound   = errors.New("return request not found")
	ErrIllegalTransition = errors.New("illegal return status transition")
)

type Store struct {
	mu       sync.RWMutex
	requests []*domain.ReturnRequest
}

func NewStore() *Store {
	return &Store{requests: seedRequests()}
}

func (s *Store) List() []domain.ReturnRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.ReturnRequest, 0, len(s.requests))
	for _, r := range s.requests {
		result = append(result, *r)
	}
	return result
}

func (s *Store) Get(id string) (domain.ReturnRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.requests {
		if r.ID == id {
			return *r, nil
		}
	}
	return domain.ReturnRequest{}, ErrRequestNotFound
}

// Advance moves a request along its own lifecycle, independent of any
// shipping state.
func (s *Store) Advance(id string, next domain.ReturnStatus) (domain.ReturnRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.ID != id {
			continue
		}
		if !r.Status.CanTransitionTo(next) {
			return domain.ReturnRequest{}, ErrIllegalTransition
		}
		r.Status = next
		r.Progress = next.DefaultProgress()
		if next == domain.ReturnRejected {
			r.RefundAmount = 0
		}
		return *r, nil
	}
	return domain.ReturnRequest{}, ErrRequestNotFound
}

func seedRequests() []*domain.ReturnRequest {
	return []*domain.ReturnRequest{
		{
			ID: "1", OrderNumber: "URB-2025-001", Status: domain.ReturnPending,
			RequestDate: "Dec 28, 2025", Reason: "Wrong size received", Progress: 20, RefundAmount: 2850,
			Items: []domain.ReturnItem{{Name: "Urban Hoodie", Quantity: 1, Price: 2850}},
		},
		{
			ID: "2", OrderNumber: "URB-2025-002", Status: domain.ReturnApproved,
			RequestDate: "Dec 26, 2025", Reason: "Item damaged during shipping", Progress: 50, RefundAmount: 1950,
			Items: []domain.ReturnItem{{Name: "Premium T-Shirt", Quantity: 1, Price: 1950}},
		},
		{
			ID: "3", OrderNumber: "URB-2025-003", Status: domain.ReturnReceived,
			RequestDate: "Dec 24, 2025", Reason: "Not satisfied with quality", Progress: 75, RefundAmount: 4200,
			Items: []domain.ReturnItem{
				{Name: "Urban Jacket", Quantity: 1, Price: 4200},
				{Name: "Denim Jeans", Quantity: 1, Price: 3200},
			},
		},
		{
			ID: "4", OrderNumber: "URB-2025-004", Status: domain.ReturnRefunded,
			RequestDate: "Dec 20, 2025", Reason: "Changed mind", Progress: 100, RefundAmount: 1650,
			Items: []domain.ReturnItem{{Name: "Casual Shirt", Quantity: 1, Price: 1650}},
		},
		{
			ID: "5", OrderNumber: "URB-2025-005", Status: domain.ReturnRejected,
			RequestDate: "Dec 22, 2025", Reason: "Item used/worn", Progress: 100, RefundAmount: 0,
			Items: []domain.ReturnItem{{Name: "Winter Hoodie", Quantity: 1, Price: 2850}},
		},
	}
}
