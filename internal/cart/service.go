// Package cart fronts the backend-owned cart. Every read recomputes line
// totals and the item count locally, refreshes the session snapshot, and
// add-to-cart is guarded against double submits.
package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	Get(ctx context.Context, endpoint string, query url.Values, out any) error
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
	Delete(ctx context.Context, endpoint string, query url.Values) error
}

type imageResolver interface {
	ImageURL(pathPrefix, filename string) string
}

type snapshotStore interface {
	SaveCartSnapshot(ctx context.Context, sess *session.Session, snapshot types.CartSnapshot) error
}

type idempotencyGuard interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IdempotencyKey(scope, id string) string
}

// Service owns cart reads and mutations for the session user.
type Service struct {
	upstream upstreamClient
	images   imageResolver
	sessions snapshotStore
	guard    idempotencyGuard
	debounce time.Duration
}

// NewService wires the cart service.
func NewService(client upstreamClient, images imageResolver, sessions snapshotStore, guard idempotencyGuard, cfg config.CartConfig) *Service {
	return &Service{
		upstream: client,
		images:   images,
		sessions: sessions,
		guard:    guard,
		debounce: cfg.AddDebounce,
	}
}

// Fetch reads the user's cart, recomputes totals locally, and refreshes the
// session snapshot that the navigation badge reads.
func (s *Service) Fetch(ctx context.Context, sess *session.Session) (types.CartSnapshot, error) {
	query := url.Values{"user_id": []string{sess.Profile.UserID.String()}}

	var items []types.CartItem
	if err := s.upstream.Get(ctx, upstream.EndpointCart, query, &items); err != nil {
		return types.CartSnapshot{}, err
	}

	for i := range items {
		// The backend's total column drifts when prices change after the
		// line was added; recompute from price and quantity.
		items[i].Total = items[i].LineTotal()
		if s.images != nil {
			items[i].Image = s.images.ImageURL(upstream.ProductImagePath, items[i].Image)
		}
	}

	snapshot := types.CartSnapshot{Items: items, Count: len(items)}
	if err := s.sessions.SaveCartSnapshot(ctx, sess, snapshot); err != nil {
		return types.CartSnapshot{}, err
	}
	return snapshot, nil
}

// AddInput is one add-to-cart request.
type AddInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

// Add pushes a new cart line to the backend. An identical payload arriving
// within the debounce window is rejected as a double submit instead of
// producing a duplicate line.
func (s *Service) Add(ctx context.Context, sess *session.Session, input AddInput) (types.CartSnapshot, error) {
	if s.guard != nil {
		key := s.guard.IdempotencyKey("cart-add", addFingerprint(sess, input))
		fresh, err := s.guard.SetNX(ctx, key, "1", s.debounce)
		if err != nil {
			return types.CartSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check duplicate submission")
		}
		if !fresh {
			return types.CartSnapshot{}, pkgerrors.New(pkgerrors.CodeIdempotency, "item was just added to the cart")
		}
	}

	payload := map[string]any{
		"user_id":    sess.Profile.UserID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"price":      input.Price,
	}
	if err := s.upstream.PostJSON(ctx, upstream.EndpointCart, payload, nil); err != nil {
		return types.CartSnapshot{}, err
	}

	return s.Fetch(ctx, sess)
}

// Remove deletes a cart line, then re-reads the cart so the caller always
// sees the backend's authoritative state.
func (s *Service) Remove(ctx context.Context, sess *session.Session, cartID string) (types.CartSnapshot, error) {
	if cartID == "" {
		return types.CartSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	query := url.Values{"cart_id": []string{cartID}}
	if err := s.upstream.Delete(ctx, upstream.EndpointCart, query); err != nil {
		return types.CartSnapshot{}, err
	}

	return s.Fetch(ctx, sess)
}

func addFingerprint(sess *session.Session, input AddInput) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%s:%d:%s",
		sess.Profile.UserID.String(), input.ProductID, input.Quantity, input.Price.String()))
	return hex.EncodeToString(sum[:])
}
