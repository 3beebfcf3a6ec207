package cart

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

type stubUpstream struct {
	cartJSON    string
	posts       int
	deletes     int
	deleteQuery url.Values
	getQuery    url.Values
}

func (s *stubUpstream) Get(ctx context.Context, endpoint string, query url.Values, out any) error {
	s.getQuery = query
	if out != nil && s.cartJSON != "" {
		return json.Unmarshal([]byte(s.cartJSON), out)
	}
	return nil
}

func (s *stubUpstream) PostJSON(ctx context.Context, endpoint string, payload any, out any) error {
	s.posts++
	return nil
}

func (s *stubUpstream) Delete(ctx context.Context, endpoint string, query url.Values) error {
	s.deletes++
	s.deleteQuery = query
	return nil
}

type stubSnapshots struct {
	saved []types.CartSnapshot
}

func (s *stubSnapshots) SaveCartSnapshot(ctx context.Context, sess *session.Session, snapshot types.CartSnapshot) error {
	s.saved = append(s.saved, snapshot)
	return nil
}

type stubGuard struct {
	seen map[string]bool
}

func (s *stubGuard) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *stubGuard) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func testSession() *session.Session {
	return &session.Session{ID: "jti-1", Profile: types.UserProfile{
		UserID: types.FlexInt(7), Role: enums.RoleFarmer,
	}}
}

const cartListing = `[
	{"cart_id":1,"product_id":9,"name":"Urea 45kg","image":"urea.jpg","price":"300","quantity":"2","total":"480"},
	{"cart_id":2,"product_id":3,"name":"Wheat Seeds","image":"wheat.jpg","price":120.5,"quantity":1,"total":120.5}
]`

func newTestService(up *stubUpstream, snaps *stubSnapshots, guard *stubGuard) *Service {
	return NewService(up, nil, snaps, guard, config.CartConfig{AddDebounce: 5 * time.Second})
}

func TestFetchRecomputesTotalsAndSavesSnapshot(t *testing.T) {
	up := &stubUpstream{cartJSON: cartListing}
	snaps := &stubSnapshots{}
	svc := newTestService(up, snaps, nil)

	snapshot, err := svc.Fetch(context.Background(), testSession())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if up.getQuery.Get("user_id") != "7" {
		t.Fatalf("expected user_id query, got %v", up.getQuery)
	}

	// The stale server total (480) is replaced by 300*2.
	if !snapshot.Items[0].Total.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("line total not recomputed: %s", snapshot.Items[0].Total)
	}
	if snapshot.Count != 2 {
		t.Fatalf("expected count 2, got %d", snapshot.Count)
	}
	if !snapshot.Total().Equal(decimal.RequireFromString("720.5")) {
		t.Fatalf("unexpected cart total %s", snapshot.Total())
	}
	if len(snaps.saved) != 1 {
		t.Fatal("snapshot not saved to session")
	}
}

func TestAddRejectsDoubleSubmit(t *testing.T) {
	up := &stubUpstream{cartJSON: cartListing}
	svc := newTestService(up, &stubSnapshots{}, &stubGuard{})

	input := AddInput{ProductID: "9", Quantity: 2, Price: decimal.NewFromInt(300)}
	if _, err := svc.Add(context.Background(), testSession(), input); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if up.posts != 1 {
		t.Fatalf("expected 1 post, got %d", up.posts)
	}

	_, err := svc.Add(context.Background(), testSession(), input)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeIdempotency {
		t.Fatalf("expected duplicate submission error, got %v", err)
	}
	if up.posts != 1 {
		t.Fatalf("duplicate must not reach the backend, posts=%d", up.posts)
	}
}

func TestAddWithDifferentPayloadIsNotDuplicate(t *testing.T) {
	up := &stubUpstream{cartJSON: cartListing}
	svc := newTestService(up, &stubSnapshots{}, &stubGuard{})

	first := AddInput{ProductID: "9", Quantity: 2, Price: decimal.NewFromInt(300)}
	second := AddInput{ProductID: "9", Quantity: 3, Price: decimal.NewFromInt(300)}
	if _, err := svc.Add(context.Background(), testSession(), first); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), testSession(), second); err != nil {
		t.Fatalf("second add: %v", err)
	}
	if up.posts != 2 {
		t.Fatalf("expected 2 posts, got %d", up.posts)
	}
}

func TestRemoveReFetchesCart(t *testing.T) {
	up := &stubUpstream{cartJSON: cartListing}
	snaps := &stubSnapshots{}
	svc := newTestService(up, snaps, nil)

	snapshot, err := svc.Remove(context.Background(), testSession(), "1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if up.deletes != 1 || up.deleteQuery.Get("cart_id") != "1" {
		t.Fatalf("unexpected delete call: %v", up.deleteQuery)
	}
	if len(snapshot.Items) != 2 {
		t.Fatalf("expected re-fetched cart, got %+v", snapshot)
	}
	if len(snaps.saved) != 1 {
		t.Fatal("snapshot not refreshed after remove")
	}
}

func TestRemoveRequiresCartID(t *testing.T) {
	svc := newTestService(&stubUpstream{}, &stubSnapshots{}, nil)
	_, err := svc.Remove(context.Background(), testSession(), "")
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
