package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusMocked    PaymentStatus = "mocked"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// Accepted reports whether a checkout carrying this status should
// produce an order. Pending covers COD and asynchronous wallet
// confirmations, mocked covers the sandbox branch.
func (s PaymentStatus) Accepted() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusPending || s == PaymentStatusMocked
}

// PaymentResult is what a gateway handler returns for one attempt.
// It is never persisted on its own; its status is attached to the
// OrderDraft.
type PaymentResult struct {
	Success       bool          `json:"success"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	RedirectURL   string        `json:"redirect_url,omitempty"`
	Message       string        `json:"message"`
	Method        PaymentMethod `json:"payment_method"`
}

// OrderDraft is the snapshot created at checkout submission. Once
// persisted it is never modified; the confirmation and tracking views
// read it as-is.
type OrderDraft struct {
	OrderNumber      string        `json:"order_number"`
	CustomerName     string        `json:"customer_name"`
	CustomerEmail    string        `json:"customer_email"`
	CustomerPhone    string        `json:"customer_phone"`
	Address          string        `json:"address"`
	City             string        `json:"city"`
	PostalCode       string        `json:"postal_code,omitempty"`
	Items            []LineItem    `json:"items"`
	Subtotal         int64         `json:"subtotal"`
	DeliveryFee      int64         `json:"delivery_fee"`
	Total            int64         `json:"total"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	ExpectedDelivery string        `json:"expected_delivery"`
	CreatedAt        time.Time     `json:"created_at"`
}
