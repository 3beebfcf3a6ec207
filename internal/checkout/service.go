// Package checkout owns the address book and order placement. Cash on
// delivery and card payments converge on the same backend order payload;
// card details are exchanged for a Stripe token first and never stored.
package checkout

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/stripe"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
}

type sessionStore interface {
	LoadCartSnapshot(ctx context.Context, sess *session.Session) (types.CartSnapshot, error)
	ClearCartSnapshot(ctx context.Context, sess *session.Session) error
	LoadAddressBook(ctx context.Context, sess *session.Session) (types.AddressBook, error)
	SaveAddressBook(ctx context.Context, sess *session.Session, book types.AddressBook) error
}

type cardTokenizer interface {
	TokenizeCard(ctx context.Context, card stripe.CardDetails) (string, error)
}

// Service handles the checkout page: addresses plus order placement.
type Service struct {
	upstream  upstreamClient
	sessions  sessionStore
	tokenizer cardTokenizer
	logger    *logger.Logger
}

// NewService wires the checkout service.
func NewService(client upstreamClient, sessions sessionStore, tokenizer cardTokenizer, logg *logger.Logger) *Service {
	return &Service{upstream: client, sessions: sessions, tokenizer: tokenizer, logger: logg}
}

// Addresses returns the user's address book.
func (s *Service) Addresses(ctx context.Context, sess *session.Session) (types.AddressBook, error) {
	return s.sessions.LoadAddressBook(ctx, sess)
}

// AddressInput carries the editable address fields.
type AddressInput struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required"`
}

// AddAddress appends a new address with a fresh stable ID. The first address
// added becomes the selected one.
func (s *Service) AddAddress(ctx context.Context, sess *session.Session, input AddressInput) (types.AddressBook, error) {
	book, err := s.sessions.LoadAddressBook(ctx, sess)
	if err != nil {
		return types.AddressBook{}, err
	}

	book.Add(types.Address{
		ID:       uuid.NewString(),
		FullName: input.FullName,
		Phone:    input.Phone,
		Street:   input.Street,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
	})
	if err := s.sessions.SaveAddressBook(ctx, sess, book); err != nil {
		return types.AddressBook{}, err
	}
	return book, nil
}

// UpdateAddress replaces the address with the given ID.
func (s *Service) UpdateAddress(ctx context.Context, sess *session.Session, id string, input AddressInput) (types.AddressBook, error) {
	book, err := s.sessions.LoadAddressBook(ctx, sess)
	if err != nil {
		return types.AddressBook{}, err
	}

	ok := book.Update(types.Address{
		ID:       id,
		FullName: input.FullName,
		Phone:    input.Phone,
		Street:   input.Street,
		City:     input.City,
		State:    input.State,
		Zip:      input.Zip,
	})
	if !ok {
		return types.AddressBook{}, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	if err := s.sessions.SaveAddressBook(ctx, sess, book); err != nil {
		return types.AddressBook{}, err
	}
	return book, nil
}

// RemoveAddress deletes an address; the selection falls back per the book's
// rules rather than dangling.
func (s *Service) RemoveAddress(ctx context.Context, sess *session.Session, id string) (types.AddressBook, error) {
	book, err := s.sessions.LoadAddressBook(ctx, sess)
	if err != nil {
		return types.AddressBook{}, err
	}
	if !book.Remove(id) {
		return types.AddressBook{}, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	if err := s.sessions.SaveAddressBook(ctx, sess, book); err != nil {
		return types.AddressBook{}, err
	}
	return book, nil
}

// SelectAddress marks an address as the checkout target.
func (s *Service) SelectAddress(ctx context.Context, sess *session.Session, id string) (types.AddressBook, error) {
	book, err := s.sessions.LoadAddressBook(ctx, sess)
	if err != nil {
		return types.AddressBook{}, err
	}
	if !book.Select(id) {
		return types.AddressBook{}, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	if err := s.sessions.SaveAddressBook(ctx, sess, book); err != nil {
		return types.AddressBook{}, err
	}
	return book, nil
}

// CardInput carries raw card fields for the stripe payment method.
type CardInput struct {
	Number   string `json:"number" validate:"required"`
	ExpMonth int64  `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear  int64  `json:"exp_year" validate:"required"`
	CVC      string `json:"cvc" validate:"required"`
}

// PlaceOrderInput selects the payment method; card details are required only
// for stripe.
type PlaceOrderInput struct {
	PaymentMethod string     `json:"payment_method" validate:"required"`
	Card          *CardInput `json:"card,omitempty"`
}

// OrderReceipt is what the checkout page shows after a successful order.
type OrderReceipt struct {
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	ItemCount       int             `json:"item_count"`
}

// PlaceOrder validates the cart and selected address, tokenizes the card for
// stripe payments, submits the order, and clears the cart snapshot.
func (s *Service) PlaceOrder(ctx context.Context, sess *session.Session, input PlaceOrderInput) (*OrderReceipt, error) {
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	snapshot, err := s.sessions.LoadCartSnapshot(ctx, sess)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	book, err := s.sessions.LoadAddressBook(ctx, sess)
	if err != nil {
		return nil, err
	}
	address, ok := book.Selected()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "select a shipping address first")
	}

	payload := map[string]any{
		"user_id":          sess.Profile.UserID,
		"total_amount":     snapshot.Total(),
		"shipping_address": formatAddress(address),
		"payment_method":   string(method),
		"cart_items":       snapshot.Items,
	}

	if method == enums.PaymentMethodStripe {
		if input.Card == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "card details are required for stripe payments")
		}
		if s.tokenizer == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "card payments are not configured")
		}
		token, err := s.tokenizer.TokenizeCard(ctx, stripe.CardDetails{
			Number:   input.Card.Number,
			ExpMonth: input.Card.ExpMonth,
			ExpYear:  input.Card.ExpYear,
			CVC:      input.Card.CVC,
		})
		if err != nil {
			return nil, err
		}
		payload["stripe_token"] = token
	}

	if err := s.upstream.PostJSON(ctx, upstream.EndpointOrders, payload, nil); err != nil {
		return nil, err
	}

	if err := s.sessions.ClearCartSnapshot(ctx, sess); err != nil {
		// The order went through; a stale badge is the only consequence.
		if s.logger != nil {
			s.logger.Warn(ctx, "cart snapshot not cleared after order")
		}
	}

	return &OrderReceipt{
		TotalAmount:     snapshot.Total(),
		PaymentMethod:   string(method),
		ShippingAddress: formatAddress(address),
		ItemCount:       len(snapshot.Items),
	}, nil
}

func formatAddress(addr types.Address) string {
	parts := []string{addr.FullName, addr.Street, addr.City, addr.State, addr.Zip}
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	out := strings.Join(kept, ", ")
	if strings.TrimSpace(addr.Phone) != "" {
		out += " (" + addr.Phone + ")"
	}
	return out
}
