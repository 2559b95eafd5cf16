package payment

import (
	"fmt"

	"github.com/urbanwear/storefront/internal/domain"
)

// SandboxPolicy decides whether a gateway call is replaced with a
// synthesized result. It is injected at wiring time so tests can pick
// the branch deterministically instead of sniffing the environment.
type SandboxPolicy interface {
	// ShouldMock is consulted per attempt with whether the gateway's
	// credentials are missing.
	ShouldMock(missingConfig bool) bool
}

// AutoPolicy reproduces the storefront's default rule: mock when the
// operator forces it, or in dev mode when the gateway is unconfigured.
type AutoPolicy struct {
	Force   bool
	DevMode bool
}

func (p AutoPolicy) ShouldMock(missingConfig bool) bool {
	return p.Force || (p.DevMode && missingConfig)
}

// LivePolicy never mocks; unconfigured gateways fail at the remote call.
type LivePolicy struct{}

func (LivePolicy) ShouldMock(bool) bool { return false }

// mockResult synthesizes a successful sandbox result. The order number
// doubles as the transaction id so the confirmation and tracking views
// work without live credentials.
func mockResult(method domain.PaymentMethod, orderNumber string) *domain.PaymentResult {
	return &domain.PaymentResult{
		Success:       true,
		Status:        domain.PaymentStatusMocked,
		TransactionID: orderNumber,
		Message:       fmt.Sprintf("%s payment mocked (no backend configured)", method),
		Method:        method,
	}
}
