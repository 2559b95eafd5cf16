package payment

import (
	"errors"

	"github.com/urbanwear/storefront/internal/config"
	"github.com/urbanwear/storefront/internal/domain"
)

var ErrInvalidCallbackHash = errors.New("invalid callback hash")

// JazzCashCallback is the inbound notification a wallet confirmation
// posts back after the customer approves or abandons the payment.
type JazzCashCallback struct {
	BillReference   string `json:"pp_BillReference"`
	ResponseCode    string `json:"pp_ResponseCode"`
	ResponseMessage string `json:"pp_ResponseMessage"`
	TransactionID   string `json:"pp_TransactionID"`
	Amount          int64  `json:"pp_Amount"`
	SecureHash      string `json:"pp_SecureHash"`
}

// VerifyCallback authenticates an inbound JazzCash notification and
// maps it to a payment result. The hash is recomputed from the shared
// secret and compared before anything in the payload is trusted; a
// mismatch rejects the notification outright.
func VerifyCallback(cfg config.Gateways, cb JazzCashCallback) (*domain.PaymentResult, error) {
	if !VerifyJazzCashCallback(cfg.JazzCashMerchantID, cfg.JazzCashPassword, cb.BillReference, cb.ResponseCode, cb.TransactionID, cb.SecureHash) {
		return nil, ErrInvalidCallbackHash
	}

	// "000" is the wallet's success code.
	if cb.ResponseCode == "000" {
		return &domain.PaymentResult{
			Success:       true,
			Status:        domain.PaymentStatusCompleted,
			TransactionID: cb.TransactionID,
			Message:       "Payment processed successfully",
			Method:        domain.MethodJazzCash,
		}, nil
	}

	msg := cb.ResponseMessage
	if msg == "" {
		msg = "Payment failed"
	}
	return &domain.PaymentResult{
		Status:        domain.PaymentStatusFailed,
		TransactionID: cb.TransactionID,
		Message:       msg,
		Method:        domain.MethodJazzCash,
	}, nil
}
