package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/stripe"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

type stubUpstream struct {
	payloads []map[string]any
	err      error
}

func (s *stubUpstream) PostJSON(ctx context.Context, endpoint string, payload any, out any) error {
	if m, ok := payload.(map[string]any); ok {
		s.payloads = append(s.payloads, m)
	}
	return s.err
}

type stubSessions struct {
	snapshot     types.CartSnapshot
	book         types.AddressBook
	cartsCleared int
	savedBooks   int
}

func (s *stubSessions) LoadCartSnapshot(ctx context.Context, sess *session.Session) (types.CartSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubSessions) ClearCartSnapshot(ctx context.Context, sess *session.Session) error {
	s.cartsCleared++
	return nil
}

func (s *stubSessions) LoadAddressBook(ctx context.Context, sess *session.Session) (types.AddressBook, error) {
	return s.book, nil
}

func (s *stubSessions) SaveAddressBook(ctx context.Context, sess *session.Session, book types.AddressBook) error {
	s.book = book
	s.savedBooks++
	return nil
}

type stubTokenizer struct {
	token string
	calls int
	err   error
}

func (s *stubTokenizer) TokenizeCard(ctx context.Context, card stripe.CardDetails) (string, error) {
	s.calls++
	return s.token, s.err
}

func testSession() *session.Session {
	return &session.Session{ID: "jti-1", Profile: types.UserProfile{
		UserID: types.FlexInt(7), Role: enums.RoleFarmer,
	}}
}

func filledCart() types.CartSnapshot {
	return types.CartSnapshot{
		Items: []types.CartItem{{
			CartID:    types.FlexInt(1),
			ProductID: types.FlexInt(9),
			Name:      "Urea 45kg",
			Price:     decimal.NewFromInt(300),
			Quantity:  types.FlexInt(2),
			Total:     decimal.NewFromInt(600),
		}},
		Count: 1,
	}
}

func selectedBook() types.AddressBook {
	return types.AddressBook{
		Addresses: []types.Address{{
			ID: "addr-1", FullName: "Asha", Phone: "99", Street: "12 Canal Rd",
			City: "Nashik", State: "MH", Zip: "422001",
		}},
		SelectedID: "addr-1",
	}
}

func TestAddAddressAssignsStableIDAndSelectsFirst(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewService(&stubUpstream{}, sessions, nil, nil)

	book, err := svc.AddAddress(context.Background(), testSession(), AddressInput{
		FullName: "Asha", Phone: "99", Street: "12 Canal Rd", City: "Nashik", State: "MH", Zip: "422001",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(book.Addresses) != 1 || book.Addresses[0].ID == "" {
		t.Fatalf("expected address with generated id: %+v", book)
	}
	if book.SelectedID != book.Addresses[0].ID {
		t.Fatalf("first address should become selected: %+v", book)
	}
}

func TestRemoveUnselectedAddressKeepsSelection(t *testing.T) {
	book := selectedBook()
	book.Add(types.Address{ID: "addr-2", FullName: "Other", Street: "Elsewhere", City: "Pune"})
	sessions := &stubSessions{book: book}
	svc := NewService(&stubUpstream{}, sessions, nil, nil)

	got, err := svc.RemoveAddress(context.Background(), testSession(), "addr-2")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got.SelectedID != "addr-1" {
		t.Fatalf("selection must not move when another address is removed: %+v", got)
	}
}

func TestPlaceOrderCODSubmitsConvergedPayload(t *testing.T) {
	up := &stubUpstream{}
	sessions := &stubSessions{snapshot: filledCart(), book: selectedBook()}
	svc := NewService(up, sessions, nil, nil)

	receipt, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	payload := up.payloads[0]
	if payload["payment_method"] != "cod" {
		t.Fatalf("unexpected method: %v", payload["payment_method"])
	}
	if _, hasToken := payload["stripe_token"]; hasToken {
		t.Fatal("cod order must not carry a stripe token")
	}
	total, ok := payload["total_amount"].(decimal.Decimal)
	if !ok || !total.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("unexpected total: %v", payload["total_amount"])
	}
	if sessions.cartsCleared != 1 {
		t.Fatal("cart snapshot should be cleared after order")
	}
	if receipt.ItemCount != 1 || receipt.PaymentMethod != "cod" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestPlaceOrderStripeTokenizesCard(t *testing.T) {
	up := &stubUpstream{}
	tokenizer := &stubTokenizer{token: "tok_visa"}
	sessions := &stubSessions{snapshot: filledCart(), book: selectedBook()}
	svc := NewService(up, sessions, tokenizer, nil)

	_, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{
		PaymentMethod: "stripe",
		Card:          &CardInput{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2028, CVC: "123"},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if tokenizer.calls != 1 {
		t.Fatalf("expected one tokenization, got %d", tokenizer.calls)
	}
	if up.payloads[0]["stripe_token"] != "tok_visa" {
		t.Fatalf("token not forwarded: %v", up.payloads[0])
	}
}

func TestPlaceOrderStripeWithoutCardFails(t *testing.T) {
	sessions := &stubSessions{snapshot: filledCart(), book: selectedBook()}
	svc := NewService(&stubUpstream{}, sessions, &stubTokenizer{}, nil)

	_, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{PaymentMethod: "stripe"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderEmptyCartFails(t *testing.T) {
	sessions := &stubSessions{book: selectedBook()}
	up := &stubUpstream{}
	svc := NewService(up, sessions, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{PaymentMethod: "cod"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(up.payloads) != 0 {
		t.Fatal("backend must not be called with an empty cart")
	}
}

func TestPlaceOrderWithoutSelectedAddressFails(t *testing.T) {
	sessions := &stubSessions{snapshot: filledCart()}
	svc := NewService(&stubUpstream{}, sessions, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{PaymentMethod: "cod"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderKeepsCartWhenBackendRejects(t *testing.T) {
	up := &stubUpstream{err: pkgerrors.New(pkgerrors.CodeUpstream, "stock changed")}
	sessions := &stubSessions{snapshot: filledCart(), book: selectedBook()}
	svc := NewService(up, sessions, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), testSession(), PlaceOrderInput{PaymentMethod: "cod"})
	if err == nil {
		t.Fatal("expected error")
	}
	if sessions.cartsCleared != 0 {
		t.Fatal("cart must survive a rejected order")
	}
}
