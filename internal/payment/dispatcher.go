package payment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/urbanwear/storefront/internal/config"
	"github.com/urbanwear/storefront/internal/domain"
)

type poster interface {
	PostJSON(ctx context.Context, path string, body any, headers map[string]string) ([]byte, error)
}

// Dispatcher routes a validated submission to its gateway handler.
// Every non-COD handler has two branches: the configured branch posts
// to the payment backend, the sandbox branch synthesizes a mocked
// success so the rest of the flow stays exercisable without
// credentials.
type Dispatcher struct {
	cfg     config.Gateways
	client  poster
	sandbox SandboxPolicy
	now     func() time.Time
}

func NewDispatcher(cfg config.Gateways, client *Client, policy SandboxPolicy) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		client:  client,
		sandbox: policy,
		now:     time.Now,
	}
}

// Process runs a single payment attempt. One request, one response; a
// retry is a fresh call from unchanged checkout state.
func (d *Dispatcher) Process(ctx context.Context, req Request, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error) {
	switch r := req.(type) {
	case CODRequest:
		return d.processCOD(draft), nil
	case CardRequest:
		return d.processCard(ctx, r, amount, draft)
	case GooglePayRequest:
		return d.processGooglePay(ctx, r, amount, draft)
	case WalletRequest:
		switch r.Gateway {
		case domain.MethodJazzCash:
			return d.processJazzCash(ctx, r, amount, draft)
		case domain.MethodEasypaisa:
			return d.processEasypaisa(ctx, r, amount, draft)
		}
		return nil, ErrUnknownGateway
	default:
		return nil, ErrUnknownGateway
	}
}

// processCOD needs no remote call and no configuration: the order is
// confirmed locally and payment is collected on delivery.
func (d *Dispatcher) processCOD(draft *domain.OrderDraft) *domain.PaymentResult {
	return &domain.PaymentResult{
		Success:       true,
		Status:        domain.PaymentStatusPending,
		TransactionID: draft.OrderNumber,
		Message:       "Order confirmed. Payment will be collected on delivery.",
		Method:        domain.MethodCOD,
	}
}

// cardResponse is the card processor's reply shape, shared by stripe,
// visa and google pay endpoints.
type cardResponse struct {
	Success       bool   `json:"success"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

func (d *Dispatcher) processCard(ctx context.Context, req CardRequest, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error) {
	missing := d.cfg.StripePublicKey == ""
	if d.sandbox.ShouldMock(missing) {
		return mockResult(req.Gateway, draft.OrderNumber), nil
	}

	body := map[string]any{
		"token":       req.Token,
		"amount":      amount,
		"currency":    d.cfg.Currency,
		"description": "Urban Wear Order - " + draft.OrderNumber,
		"metadata": map[string]string{
			"orderId":       draft.OrderNumber,
			"customerEmail": draft.CustomerEmail,
		},
	}
	path := "/api/payments/stripe"
	failMsg := "Stripe payment failed"
	if req.Gateway == domain.MethodVisa {
		body["cardNetwork"] = "visa"
		path = "/api/payments/visa"
		failMsg = "Visa payment failed"
	}

	data, err := d.client.PostJSON(ctx, path, body, nil)
	if err != nil {
		return nil, &GatewayError{Method: req.Gateway, Message: failMsg, Err: err}
	}

	var resp cardResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &GatewayError{Method: req.Gateway, Message: failMsg, Err: err}
	}
	return mapCardResponse(req.Gateway, resp), nil
}

func (d *Dispatcher) processGooglePay(ctx context.Context, req GooglePayRequest, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error) {
	missing := d.cfg.GooglePayClientID == ""
	if d.sandbox.ShouldMock(missing) {
		return mockResult(domain.MethodGooglePay, draft.OrderNumber), nil
	}

	body := map[string]any{
		"token":       req.Token,
		"amount":      amount,
		"currency":    d.cfg.Currency,
		"description": "Urban Wear Order - " + draft.OrderNumber,
		"orderId":     draft.OrderNumber,
	}

	data, err := d.client.PostJSON(ctx, "/api/payments/google-pay", body, nil)
	if err != nil {
		return nil, &GatewayError{Method: domain.MethodGooglePay, Message: "Google Pay transaction failed", Err: err}
	}

	var resp cardResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &GatewayError{Method: domain.MethodGooglePay, Message: "Google Pay transaction failed", Err: err}
	}
	return mapCardResponse(domain.MethodGooglePay, resp), nil
}

func mapCardResponse(method domain.PaymentMethod, resp cardResponse) *domain.PaymentResult {
	status := domain.PaymentStatusFailed
	switch resp.Status {
	case "completed":
		status = domain.PaymentStatusCompleted
	case "pending":
		status = domain.PaymentStatusPending
	}
	return &domain.PaymentResult{
		Success:       status != domain.PaymentStatusFailed,
		Status:        status,
		TransactionID: resp.TransactionID,
		Message:       resp.Message,
		Method:        method,
	}
}

type jazzCashResponse struct {
	Status        string `json:"status"`
	RedirectURL   string `json:"redirectURL"`
	TransactionID string `json:"transactionId"`
	StatusMessage string `json:"statusMessage"`
}

func (d *Dispatcher) processJazzCash(ctx context.Context, req WalletRequest, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error) {
	missing := d.cfg.JazzCashMerchantID == "" || d.cfg.JazzCashPassword == ""
	if d.sandbox.ShouldMock(missing) {
		return mockResult(domain.MethodJazzCash, draft.OrderNumber), nil
	}

	returnURL := d.cfg.BaseURL + "/order-confirmation"
	body := map[string]any{
		"merchantId":        d.cfg.JazzCashMerchantID,
		"ppAmount":          amount,
		"ppBillReference":   draft.OrderNumber,
		"ppDescription":     "Urban Wear Order",
		"ppLanguage":        "EN",
		"ppNotificationURL": d.cfg.BaseURL + "/api/payments/jazz-cash/callback",
		"ppReturnURL":       returnURL,
		"ppExpiryDate":      d.now().Add(24 * time.Hour).Format("2006-01-02"),
		"ppSecureHash":      JazzCashSecureHash(d.cfg.JazzCashMerchantID, draft.OrderNumber, amount, returnURL, d.cfg.JazzCashPassword),
		"phoneNumber":       req.PhoneNumber,
	}

	data, err := d.client.PostJSON(ctx, "/api/payments/jazz-cash", body, nil)
	if err != nil {
		return nil, &GatewayError{Method: domain.MethodJazzCash, Message: "JazzCash payment failed", Err: err}
	}

	var resp jazzCashResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &GatewayError{Method: domain.MethodJazzCash, Message: "JazzCash payment failed", Err: err}
	}

	// "1" means the wallet accepted the request; completion arrives
	// asynchronously on the callback endpoint.
	if resp.Status != "1" {
		msg := resp.StatusMessage
		if msg == "" {
			msg = "Payment failed"
		}
		return &domain.PaymentResult{
			Status:  domain.PaymentStatusFailed,
			Message: msg,
			Method:  domain.MethodJazzCash,
		}, nil
	}

	return &domain.PaymentResult{
		Success:       true,
		Status:        domain.PaymentStatusPending,
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.RedirectURL,
		Message:       "Please complete payment",
		Method:        domain.MethodJazzCash,
	}, nil
}

type easypaisaResponse struct {
	Status        string `json:"status"`
	PaymentURL    string `json:"paymentURL"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}

func (d *Dispatcher) processEasypaisa(ctx context.Context, req WalletRequest, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error) {
	missing := d.cfg.EasypaisaMerchant == "" || d.cfg.EasypaisaPassword == ""
	if d.sandbox.ShouldMock(missing) {
		return mockResult(domain.MethodEasypaisa, draft.OrderNumber), nil
	}

	timestamp := d.now().Unix()
	body := map[string]any{
		"merchantId":           d.cfg.EasypaisaMerchant,
		"amount":               amount,
		"transactionReference": draft.OrderNumber,
		"customerPhoneNumber":  req.PhoneNumber,
		"customerEmail":        draft.CustomerEmail,
		"customerName":         draft.CustomerName,
		"description":          "Urban Wear Order - " + draft.OrderNumber,
		"returnURL":            d.cfg.BaseURL + "/order-confirmation",
		"notificationURL":      d.cfg.BaseURL + "/api/payments/easypaisa/callback",
		"timestamp":            timestamp,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + EasypaisaToken(d.cfg.EasypaisaMerchant, d.cfg.EasypaisaPassword, amount, timestamp),
	}

	data, err := d.client.PostJSON(ctx, "/api/payments/easypaisa", body, headers)
	if err != nil {
		return nil, &GatewayError{Method: domain.MethodEasypaisa, Message: "Easypaisa payment failed", Err: err}
	}

	var resp easypaisaResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &GatewayError{Method: domain.MethodEasypaisa, Message: "Easypaisa payment failed", Err: err}
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = "Payment initiation failed"
		}
		return &domain.PaymentResult{
			Status:  domain.PaymentStatusFailed,
			Message: msg,
			Method:  domain.MethodEasypaisa,
		}, nil
	}

	return &domain.PaymentResult{
		Success:       true,
		Status:        domain.PaymentStatusPending,
		TransactionID: resp.TransactionID,
		RedirectURL:   resp.PaymentURL,
		Message:       "Please complete payment",
		Method:        domain.MethodEasypaisa,
	}, nil
}
