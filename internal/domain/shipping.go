package domain

// ShippingStatus is the post-order tracking state. Transitions move
// strictly forward; there is no cancellation and no skip-ahead.
type ShippingStatus string

const (
	ShippingProcessing     ShippingStatus = "processing"
	ShippingShipped        ShippingStatus = "shipped"
	ShippingOutForDelivery ShippingStatus = "out_for_delivery"
	ShippingDelivered      ShippingStatus = "delivered"
)

func (s ShippingStatus) String() string {
	return string(s)
}

func (s ShippingStatus) IsTerminal() bool {
	return s == ShippingDelivered
}

var shippingOrder = map[ShippingStatus]int{
	ShippingProcessing:     0,
	ShippingShipped:        1,
	ShippingOutForDelivery: 2,
	ShippingDelivered:      3,
}

// CanTransitionTo allows only the immediate next state in the sequence
// processing -> shipped -> out_for_delivery -> delivered.
func (s ShippingStatus) CanTransitionTo(next ShippingStatus) bool {
	from, ok := shippingOrder[s]
	if !ok {
		return false
	}
	to, ok := shippingOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// DefaultProgress is the display percentage for a status. It is derived,
// not an independent source of truth.
func (s ShippingStatus) DefaultProgress() int {
	switch s {
	case ShippingProcessing:
		return 20
	case ShippingShipped:
		return 60
	case ShippingOutForDelivery:
		return 85
	case ShippingDelivered:
		return 100
	}
	return 0
}

type ShippingItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"image_url,omitempty"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

type ShippingRecord struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	Status            ShippingStatus  `json:"status"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	TrackingNumber    string          `json:"tracking_number"`
	Progress          int             `json:"progress"`
	Items             []ShippingItem  `json:"items"`
	Address           ShippingAddress `json:"shipping_address"`
}
