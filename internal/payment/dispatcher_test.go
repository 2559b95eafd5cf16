package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanwear/storefront/internal/config"
	"github.com/urbanwear/storefront/internal/domain"
)

type mockPoster struct {
	response []byte
	err      error

	lastPath    string
	lastBody    any
	lastHeaders map[string]string
	calls       int
}

func (m *mockPoster) PostJSON(_ context.Context, path string, body any, headers map[string]string) ([]byte, error) {
	m.calls++
	m.lastPath = path
	m.lastBody = body
	m.lastHeaders = headers
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func fullConfig() config.Gateways {
	return config.Gateways{
		BaseURL:            "https://shop.example.com",
		StripePublicKey:    "pk_test_123",
		GooglePayClientID:  "gp-client",
		JazzCashMerchantID: "MC1234",
		JazzCashPassword:   "secret",
		EasypaisaMerchant:  "EP5678",
		EasypaisaPassword:  "secret2",
		Currency:           "PKR",
	}
}

func newTestDispatcher(cfg config.Gateways, client poster, policy SandboxPolicy) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		client:  client,
		sandbox: policy,
		now:     func() time.Time { return time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC) },
	}
}

func testDraft() *domain.OrderDraft {
	return &domain.OrderDraft{
		OrderNumber:   "URB-123456",
		CustomerName:  "Ahmed Khan",
		CustomerEmail: "ahmed@example.com",
		CustomerPhone: "+92 300 1234567",
		Total:         6750,
	}
}

func TestProcess_COD_AlwaysPending(t *testing.T) {
	// COD never touches the network, configured or not.
	poster := &mockPoster{}
	d := newTestDispatcher(config.Gateways{}, poster, LivePolicy{})

	result, err := d.Process(context.Background(), CODRequest{}, 6750, testDraft())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, domain.PaymentStatusPending, result.Status)
	assert.Equal(t, "URB-123456", result.TransactionID)
	assert.Equal(t, 0, poster.calls)
}

func TestProcess_SandboxActivatesOnlyWhenUnconfigured(t *testing.T) {
	requests := map[string]Request{
		"stripe":     CardRequest{Gateway: domain.MethodStripe, Token: "tok_visa"},
		"visa":       CardRequest{Gateway: domain.MethodVisa, Token: "tok_visa"},
		"google_pay": GooglePayRequest{Token: "gp_token"},
		"jazz_cash":  WalletRequest{Gateway: domain.MethodJazzCash, PhoneNumber: "03001234567"},
		"easypaisa":  WalletRequest{Gateway: domain.MethodEasypaisa, PhoneNumber: "03001234567"},
	}

	for name, req := range requests {
		t.Run(name, func(t *testing.T) {
			// No configuration at all, dev mode: every non-COD method mocks.
			poster := &mockPoster{}
			d := newTestDispatcher(config.Gateways{Currency: "PKR"}, poster, AutoPolicy{DevMode: true})

			result, err := d.Process(context.Background(), req, 6750, testDraft())
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.Equal(t, domain.PaymentStatusMocked, result.Status)
			assert.Equal(t, "URB-123456", result.TransactionID)
			assert.Contains(t, result.Message, req.Method().String())
			assert.Equal(t, 0, poster.calls, "sandbox branch must not call the backend")
		})
	}
}

func TestProcess_ConfiguredGatewayDoesNotMock(t *testing.T) {
	// Full credentials present: the auto policy must go remote even in
	// dev mode.
	poster := &mockPoster{response: []byte(`{"success":true,"status":"completed","transactionId":"ch_1"}`)}
	d := newTestDispatcher(fullConfig(), poster, AutoPolicy{DevMode: true})

	result, err := d.Process(context.Background(), CardRequest{Gateway: domain.MethodStripe, Token: "tok_visa"}, 6750, testDraft())
	require.NoError(t, err)

	assert.Equal(t, 1, poster.calls)
	assert.Equal(t, domain.PaymentStatusCompleted, result.Status)
	assert.Equal(t, "ch_1", result.TransactionID)
}

func TestProcess_ForcedSandboxOverridesConfig(t *testing.T) {
	poster := &mockPoster{}
	d := newTestDispatcher(fullConfig(), poster, AutoPolicy{Force: true})

	result, err := d.Process(context.Background(), GooglePayRequest{Token: "gp"}, 1000, testDraft())
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusMocked, result.Status)
	assert.Equal(t, 0, poster.calls)
}

func TestProcess_Stripe_RemoteFailureIsGatewayError(t *testing.T) {
	poster := &mockPoster{err: errors.New("connection refused")}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	_, err := d.Process(context.Background(), CardRequest{Gateway: domain.MethodStripe, Token: "tok"}, 6750, testDraft())
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, domain.MethodStripe, gwErr.Method)
	assert.Contains(t, gwErr.Message, "Stripe")
}

func TestProcess_Visa_RoutesToVisaEndpoint(t *testing.T) {
	poster := &mockPoster{response: []byte(`{"success":true,"status":"completed","transactionId":"ch_2"}`)}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	_, err := d.Process(context.Background(), CardRequest{Gateway: domain.MethodVisa, Token: "tok"}, 6750, testDraft())
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/visa", poster.lastPath)
	body := poster.lastBody.(map[string]any)
	assert.Equal(t, "visa", body["cardNetwork"])
}

func TestProcess_JazzCash_PendingWithRedirect(t *testing.T) {
	poster := &mockPoster{response: []byte(`{"status":"1","redirectURL":"https://sandbox.jazzcash.com.pk/pay/abc","transactionId":"T123"}`)}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	result, err := d.Process(context.Background(), WalletRequest{Gateway: domain.MethodJazzCash, PhoneNumber: "03001234567"}, 4999, testDraft())
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/jazz-cash", poster.lastPath)
	assert.True(t, result.Success)
	assert.Equal(t, domain.PaymentStatusPending, result.Status)
	assert.Equal(t, "https://sandbox.jazzcash.com.pk/pay/abc", result.RedirectURL)

	body := poster.lastBody.(map[string]any)
	assert.Equal(t, "URB-123456", body["ppBillReference"])
	expectedHash := JazzCashSecureHash("MC1234", "URB-123456", 4999, "https://shop.example.com/order-confirmation", "secret")
	assert.Equal(t, expectedHash, body["ppSecureHash"])
}

func TestProcess_JazzCash_DeclinedMapsToFailed(t *testing.T) {
	poster := &mockPoster{response: []byte(`{"status":"110","statusMessage":"Insufficient balance"}`)}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	result, err := d.Process(context.Background(), WalletRequest{Gateway: domain.MethodJazzCash, PhoneNumber: "03001234567"}, 4999, testDraft())
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, domain.PaymentStatusFailed, result.Status)
	assert.Equal(t, "Insufficient balance", result.Message)
}

func TestProcess_Easypaisa_BearerTokenHeader(t *testing.T) {
	poster := &mockPoster{response: []byte(`{"status":"success","paymentURL":"https://sandbox.easypaisa.com.pk/pay/x","transactionId":"E9"}`)}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	result, err := d.Process(context.Background(), WalletRequest{Gateway: domain.MethodEasypaisa, PhoneNumber: "03007654321"}, 2000, testDraft())
	require.NoError(t, err)

	assert.Equal(t, "/api/payments/easypaisa", poster.lastPath)
	assert.Equal(t, domain.PaymentStatusPending, result.Status)

	auth := poster.lastHeaders["Authorization"]
	require.NotEmpty(t, auth)
	ts := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, "Bearer "+EasypaisaToken("EP5678", "secret2", 2000, ts), auth)
}

func TestProcess_UnknownGateway(t *testing.T) {
	d := newTestDispatcher(fullConfig(), &mockPoster{}, LivePolicy{})

	_, err := d.Process(context.Background(), WalletRequest{Gateway: domain.MethodCOD}, 100, testDraft())
	assert.ErrorIs(t, err, ErrUnknownGateway)
}

func TestProcess_GarbageResponseIsGatewayError(t *testing.T) {
	poster := &mockPoster{response: []byte("<html>bad gateway</html>")}
	d := newTestDispatcher(fullConfig(), poster, LivePolicy{})

	_, err := d.Process(context.Background(), GooglePayRequest{Token: "gp"}, 100, testDraft())

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, domain.MethodGooglePay, gwErr.Method)
}

func TestMockResult_Shape(t *testing.T) {
	result := mockResult(domain.MethodEasypaisa, "URB-000042")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"mocked"`)
	assert.Contains(t, string(data), `"transaction_id":"URB-000042"`)
}
