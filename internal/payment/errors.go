package payment

import (
	"errors"
	"fmt"

	"github.com/urbanwear/storefront/internal/domain"
)

var ErrUnknownGateway = errors.New("unknown payment gateway")

// GatewayError is a failed remote call or a non-success remote
// response. The checkout flow surfaces it as a single user-visible
// message and leaves the cart untouched.
type GatewayError struct {
	Method  domain.PaymentMethod
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
