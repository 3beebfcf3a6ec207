// Package session owns the gateway's server-side session state: the signed
// token, the Redis profile record it points at, and the per-user cart
// snapshot and address book that travel with it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/sarangart/agrizen-gateway/pkg/config"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	redisclient "github.com/sarangart/agrizen-gateway/pkg/redis"
	"github.com/sarangart/agrizen-gateway/pkg/types"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(tokenID string) string
	CartSnapshotKey(userID string) string
	AddressBookKey(userID string) string
}

// Session is a resolved live session: token identity plus the stored profile.
type Session struct {
	ID      string
	Profile types.UserProfile
}

// UserKey scopes per-user records (cart snapshot, address book) so they
// survive re-login under a fresh token.
func (s *Session) UserKey() string {
	return s.Profile.UserID.String()
}

// Manager creates, resolves, and destroys sessions backed by Redis.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	cfg   config.SessionConfig
	now   func() time.Time
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		cfg:   cfg,
		now:   time.Now,
	}, nil
}

// Create stores the profile under a fresh session ID and mints its token.
func (m *Manager) Create(ctx context.Context, profile types.UserProfile) (string, *Session, error) {
	jti := NewSessionID()

	payload, err := json.Marshal(profile)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session profile")
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(jti), payload, m.cfg.TTL()); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	token, err := MintToken(m.cfg, m.now(), jti, profile)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	return token, &Session{ID: jti, Profile: profile}, nil
}

// Resolve validates the token and loads the live profile record. A valid
// signature whose record is gone resolves to an expired session.
func (m *Manager) Resolve(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := ParseToken(m.cfg, tokenString)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token")
	}

	raw, err := m.store.Get(ctx, m.keyer.SessionKey(claims.ID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}

	var profile types.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		// A record we can no longer parse is treated as logged out, not
		// as a server error.
		_ = m.store.Del(ctx, m.keyer.SessionKey(claims.ID))
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	return &Session{ID: claims.ID, Profile: profile}, nil
}

// UpdateProfile replaces the stored profile for a live session.
func (m *Manager) UpdateProfile(ctx context.Context, sess *Session, profile types.UserProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session profile")
	}
	if err := m.store.Set(ctx, m.keyer.SessionKey(sess.ID), payload, m.cfg.TTL()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	sess.Profile = profile
	return nil
}

// Destroy removes the session record. Per-user cart and address records are
// kept so they greet the user on the next login.
func (m *Manager) Destroy(ctx context.Context, sess *Session) error {
	if err := m.store.Del(ctx, m.keyer.SessionKey(sess.ID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "destroy session")
	}
	return nil
}

// SaveCartSnapshot atomically replaces the stored cart snapshot.
func (m *Manager) SaveCartSnapshot(ctx context.Context, sess *Session, snapshot types.CartSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := m.store.Set(ctx, m.keyer.CartSnapshotKey(sess.UserKey()), payload, m.cfg.TTL()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store cart snapshot")
	}
	return nil
}

// LoadCartSnapshot returns the stored snapshot, or an empty one when none
// exists or the stored value no longer parses.
func (m *Manager) LoadCartSnapshot(ctx context.Context, sess *Session) (types.CartSnapshot, error) {
	raw, err := m.store.Get(ctx, m.keyer.CartSnapshotKey(sess.UserKey()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return types.CartSnapshot{}, nil
		}
		return types.CartSnapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	var snapshot types.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		_ = m.store.Del(ctx, m.keyer.CartSnapshotKey(sess.UserKey()))
		return types.CartSnapshot{}, nil
	}
	return snapshot, nil
}

// ClearCartSnapshot drops the stored snapshot after checkout.
func (m *Manager) ClearCartSnapshot(ctx context.Context, sess *Session) error {
	if err := m.store.Del(ctx, m.keyer.CartSnapshotKey(sess.UserKey())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart snapshot")
	}
	return nil
}

// SaveAddressBook atomically replaces the stored address book.
func (m *Manager) SaveAddressBook(ctx context.Context, sess *Session, book types.AddressBook) error {
	payload, err := json.Marshal(book)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode address book")
	}
	if err := m.store.Set(ctx, m.keyer.AddressBookKey(sess.UserKey()), payload, m.cfg.TTL()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store address book")
	}
	return nil
}

// LoadAddressBook returns the stored address book, empty when absent or
// unparsable.
func (m *Manager) LoadAddressBook(ctx context.Context, sess *Session) (types.AddressBook, error) {
	raw, err := m.store.Get(ctx, m.keyer.AddressBookKey(sess.UserKey()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return types.AddressBook{}, nil
		}
		return types.AddressBook{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address book")
	}

	var book types.AddressBook
	if err := json.Unmarshal([]byte(raw), &book); err != nil {
		_ = m.store.Del(ctx, m.keyer.AddressBookKey(sess.UserKey()))
		return types.AddressBook{}, nil
	}
	return book, nil
}
