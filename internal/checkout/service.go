// Package checkout turns a cart plus a submitted form into a placed
// order: validate, price, dispatch payment, then persist the order
// snapshot and reset the cart.
package checkout

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/urbanwear/storefront/internal/domain"
	"github.com/urbanwear/storefront/internal/payment"
	"github.com/urbanwear/storefront/internal/pricing"
)

type cartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type paymentDispatcher interface {
	Process(ctx context.Context, req payment.Request, amount int64, draft *domain.OrderDraft) (*domain.PaymentResult, error)
}

type lastOrderStore interface {
	Save(draft *domain.OrderDraft) error
}

type shippingIngestor interface {
	Ingest(draft *domain.OrderDraft) domain.ShippingRecord
}

type orderArchiver interface {
	ArchiveOrder(ctx context.Context, draft *domain.OrderDraft) error
}

// Submission is the checkout form as posted by the client. Card fields
// are present only for card methods, the wallet number only for the
// mobile-money ones.
type Submission struct {
	UserID        string `json:"user_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`

	Method domain.PaymentMethod `json:"payment_method"`

	CardNumber string `json:"card_number,omitempty"`
	CardExpiry string `json:"card_expiry,omitempty"`
	CardCVC    string `json:"card_cvc,omitempty"`
	CardToken  string `json:"card_token,omitempty"`

	WalletNumber   string `json:"wallet_number,omitempty"`
	GooglePayToken string `json:"google_pay_token,omitempty"`
}

// Result pairs the immutable order snapshot with the gateway outcome.
// Order is nil when the payment failed and nothing was persisted.
type Result struct {
	Order   *domain.OrderDraft    `json:"order,omitempty"`
	Payment *domain.PaymentResult `json:"payment"`
}

type Service struct {
	cart       cartService
	calculator *pricing.Calculator
	dispatcher paymentDispatcher
	lastOrder  lastOrderStore
	shipping   shippingIngestor
	archive    orderArchiver // nil when no archive is configured

	now       func() time.Time
	numberGen func(time.Time) string
}

func NewService(cart cartService, calc *pricing.Calculator, dispatcher paymentDispatcher,
	lastOrder lastOrderStore, shipping shippingIngestor, archive orderArchiver) *Service {
	return &Service{
		cart:       cart,
		calculator: calc,
		dispatcher: dispatcher,
		lastOrder:  lastOrder,
		shipping:   shipping,
		archive:    archive,
		now:        time.Now,
		numberGen:  TimestampOrderNumber,
	}
}

// TimestampOrderNumber derives the order number from the submission
// instant: URB- plus the last six digits of the unix-millisecond clock.
// Two submissions inside the same millisecond window would collide;
// UUIDOrderNumber avoids that at the cost of the familiar shape.
func TimestampOrderNumber(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "URB-" + ms[len(ms)-6:]
}

// UUIDOrderNumber is the collision-free alternative generator.
func UUIDOrderNumber(time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "URB-" + id[:6]
}

// Quote prices the current cart without placing an order.
func (s *Service) Quote(ctx context.Context, userID string) (pricing.Quote, error) {
	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.calculator.QuoteFor(cart.Subtotal()), nil
}

// Submit runs one checkout attempt. A gateway error or a declined
// payment leaves the cart and the stored last order untouched, so the
// client can retry from unchanged state.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}

	cart, err := s.cart.Get(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	quote := s.calculator.QuoteFor(cart.Subtotal())
	draft := s.buildDraft(sub, cart, quote, now)

	result, err := s.dispatcher.Process(ctx, s.buildRequest(sub), quote.Total, draft)
	if err != nil {
		return nil, err
	}

	if !result.Status.Accepted() {
		return &Result{Payment: result}, nil
	}

	draft.PaymentStatus = result.Status
	if err := s.lastOrder.Save(draft); err != nil {
		return nil, err
	}
	s.shipping.Ingest(draft)

	if errClear := s.cart.Clear(ctx, sub.UserID); errClear != nil {
		// The order is already placed; a lingering cart is the lesser harm.
		log.Printf("clear cart after checkout error: %v \n", errClear)
	}

	if s.archive != nil {
		if errArchive := s.archive.ArchiveOrder(ctx, draft); errArchive != nil {
			log.Printf("archive order %s error: %v \n", draft.OrderNumber, errArchive)
		}
	}

	return &Result{Order: draft, Payment: result}, nil
}

func (s *Service) validate(sub Submission) error {
	switch {
	case strings.TrimSpace(sub.CustomerName) == "":
		return missingField("customer_name")
	case strings.TrimSpace(sub.CustomerEmail) == "":
		return missingField("customer_email")
	case strings.TrimSpace(sub.CustomerPhone) == "":
		return missingField("customer_phone")
	case strings.TrimSpace(sub.Address) == "":
		return missingField("address")
	case strings.TrimSpace(sub.City) == "":
		return missingField("city")
	}

	if _, ok := domain.ParseMethod(string(sub.Method)); !ok {
		return &ValidationError{Field: "payment_method", Message: "unknown payment method"}
	}

	if sub.Method.IsCard() {
		switch {
		case strings.TrimSpace(sub.CardNumber) == "":
			return missingField("card_number")
		case strings.TrimSpace(sub.CardExpiry) == "":
			return missingField("card_expiry")
		case strings.TrimSpace(sub.CardCVC) == "":
			return missingField("card_cvc")
		}
	}

	if sub.Method.IsWallet() && s.walletNumber(sub) == "" {
		return &ValidationError{Field: "wallet_number", Message: "wallet number or contact phone required"}
	}

	return nil
}

// walletNumber resolves the wallet identifier: the dedicated field when
// filled, the contact phone otherwise.
func (s *Service) walletNumber(sub Submission) string {
	if n := strings.TrimSpace(sub.WalletNumber); n != "" {
		return n
	}
	return strings.TrimSpace(sub.CustomerPhone)
}

func (s *Service) buildRequest(sub Submission) payment.Request {
	switch {
	case sub.Method == domain.MethodCOD:
		return payment.CODRequest{}
	case sub.Method.IsCard():
		return payment.CardRequest{Gateway: sub.Method, Token: sub.CardToken}
	case sub.Method == domain.MethodGooglePay:
		return payment.GooglePayRequest{Token: sub.GooglePayToken}
	default:
		return payment.WalletRequest{Gateway: sub.Method, PhoneNumber: s.walletNumber(sub)}
	}
}

func (s *Service) buildDraft(sub Submission, cart *domain.Cart, quote pricing.Quote, now time.Time) *domain.OrderDraft {
	items := make([]domain.LineItem, len(cart.Items))
	copy(items, cart.Items)

	return &domain.OrderDraft{
		OrderNumber:      s.numberGen(now),
		CustomerName:     sub.CustomerName,
		CustomerEmail:    sub.CustomerEmail,
		CustomerPhone:    sub.CustomerPhone,
		Address:          sub.Address,
		City:             sub.City,
		PostalCode:       sub.PostalCode,
		Items:            items,
		Subtotal:         quote.Subtotal,
		DeliveryFee:      quote.DeliveryFee,
		Total:            quote.Total,
		PaymentMethod:    sub.Method,
		ExpectedDelivery: now.AddDate(0, 0, 5).Format("Jan 02, 2006"),
		CreatedAt:        now,
	}
}
