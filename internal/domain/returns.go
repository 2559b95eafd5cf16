package domain

// ReturnStatus is the lifecycle of a return request. It is deliberately
// independent of ShippingStatus: the two sets of records are not
// synchronized with each other.
type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnApproved ReturnStatus = "approved"
	ReturnReceived ReturnStatus = "received"
	ReturnRefunded ReturnStatus = "refunded"
	ReturnRejected ReturnStatus = "rejected"
)

func (s ReturnStatus) String() string {
	return string(s)
}

func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnRefunded || s == ReturnRejected
}

// CanTransitionTo allows pending -> approved -> received -> refunded,
// with rejection possible from any non-terminal state.
func (s ReturnStatus) CanTransitionTo(next ReturnStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == ReturnRejected {
		return true
	}
	order := map[ReturnStatus]int{
		ReturnPending:  0,
		ReturnApproved: 1,
		ReturnReceived: 2,
		ReturnRefunded: 3,
	}
	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[next]
	if !ok {
		return false
	}
	return to == from+1
}

// DefaultProgress mirrors the display percentages used by the returns
// view; rejected requests show as complete.
func (s ReturnStatus) DefaultProgress() int {
	switch s {
	case ReturnPending:
		return 20
	case ReturnApproved:
		return 50
	case ReturnReceived:
		return 75
	case ReturnRefunded, ReturnRejected:
		return 100
	}
	return 0
}

type ReturnItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

type ReturnRequest struct {
	ID           string       `json:"id"`
	OrderNumber  string       `json:"order_number"`
	Status       ReturnStatus `json:"status"`
	RequestDate  string       `json:"request_date"`
	Reason       string       `json:"reason"`
	Items        []ReturnItem `json:"items"`
	RefundAmount int64        `json:"refund_amount"`
	Progress     int          `json:"progress"`
}
