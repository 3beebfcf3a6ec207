package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
)

// loginPath is where unauthenticated page requests are sent.
const loginPath = "/login"

type sessionResolver interface {
	Resolve(ctx context.Context, tokenString string) (*session.Session, error)
}

// Auth resolves the session cookie (or bearer token) into a live session and
// seeds the request context. Anonymous requests pass through untouched; the
// guards below decide what anonymous is allowed to reach.
func Auth(cfg config.SessionConfig, sessions sessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cfg.CookieName)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				// A stale or forged token is anonymous, not an error page.
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithUserID(ctx, sess.Profile.UserID.String())
				ctx = logg.WithActorRole(ctx, string(sess.Profile.Role))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth sends anonymous requests to the login page with a 303.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFromContext(r.Context()) == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole lets only the named role through. Authenticated users of the
// wrong role are sent to the public home page, never to login.
func RequireRole(role enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			if sess.Profile.Role != role {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
