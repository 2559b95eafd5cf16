package domain

// PaymentMethod is the closed set of supported gateways.
type PaymentMethod string

const (
	MethodCOD       PaymentMethod = "cod"
	MethodStripe    PaymentMethod = "stripe"
	MethodGooglePay PaymentMethod = "google_pay"
	MethodJazzCash  PaymentMethod = "jazz_cash"
	MethodEasypaisa PaymentMethod = "easypaisa"
	MethodVisa      PaymentMethod = "visa"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsWallet reports whether the method is a mobile-money gateway that
// takes a phone-number-shaped wallet identifier.
func (m PaymentMethod) IsWallet() bool {
	return m == MethodJazzCash || m == MethodEasypaisa
}

// IsCard reports whether the method requires card number, expiry and CVC.
func (m PaymentMethod) IsCard() bool {
	return m == MethodStripe || m == MethodVisa
}

// MethodDetails is static display configuration for one gateway.
// It is never mutated at runtime.
type MethodDetails struct {
	ID          PaymentMethod `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Enabled     bool          `json:"enabled"`
}

var methodDetails = []MethodDetails{
	{ID: MethodCOD, Name: "Cash on Delivery", Description: "Pay when your order arrives", Enabled: true},
	{ID: MethodStripe, Name: "Credit/Debit Card (Stripe)", Description: "Visa, Mastercard, and more", Enabled: true},
	{ID: MethodGooglePay, Name: "Google Pay", Description: "Fast and secure", Enabled: true},
	{ID: MethodJazzCash, Name: "JazzCash", Description: "Pakistan mobile payment", Enabled: true},
	{ID: MethodEasypaisa, Name: "Easypaisa", Description: "Fast and secure payment", Enabled: true},
	{ID: MethodVisa, Name: "Visa", Description: "Visa card payment", Enabled: true},
}

// EnabledMethods returns the ordered list of selectable gateways.
// Disabled methods are filtered out entirely, not shown as disabled.
func EnabledMethods() []MethodDetails {
	result := make([]MethodDetails, 0, len(methodDetails))
	for _, m := range methodDetails {
		if m.Enabled {
			result = append(result, m)
		}
	}
	return result
}

// ParseMethod maps a wire tag to a known method.
func ParseMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCOD, MethodStripe, MethodGooglePay, MethodJazzCash, MethodEasypaisa, MethodVisa:
		return PaymentMethod(s), true
	}
	return "", false
}
