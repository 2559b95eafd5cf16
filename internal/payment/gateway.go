// Package payment routes checkout submissions to gateway-specific
// handlers. The gateway set is closed: each gateway has its own request
// payload type and dispatch is an exhaustive type switch, so adding a
// gateway means adding a type and a handler, not a string case.
package payment

import "github.com/urbanwear/storefront/internal/domain"

// Request is the sealed set of gateway payloads. Exactly one concrete
// type exists per gateway family.
type Request interface {
	Method() domain.PaymentMethod
}

// CODRequest carries no payload; cash is collected at the door.
type CODRequest struct{}

func (CODRequest) Method() domain.PaymentMethod { return domain.MethodCOD }

// CardRequest covers the card networks routed through the card
// processor (stripe and visa).
type CardRequest struct {
	Gateway domain.PaymentMethod // MethodStripe or MethodVisa
	Token   string
}

func (r CardRequest) Method() domain.PaymentMethod { return r.Gateway }

type GooglePayRequest struct {
	Token string
}

func (GooglePayRequest) Method() domain.PaymentMethod { return domain.MethodGooglePay }

// WalletRequest covers the mobile-money gateways (jazz_cash and
// easypaisa). PhoneNumber is the wallet identifier, already resolved
// through the contact-phone fallback by the checkout layer.
type WalletRequest struct {
	Gateway     domain.PaymentMethod
	PhoneNumber string
}

func (r WalletRequest) Method() domain.PaymentMethod { return r.Gateway }
