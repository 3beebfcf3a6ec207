package controllers

import (
	"net/http"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/api/responses"
	"github.com/sarangart/agrizen-gateway/api/validators"
	authsvc "github.com/sarangart/agrizen-gateway/internal/auth"
	"github.com/sarangart/agrizen-gateway/pkg/config"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
)

// Login exchanges credentials for a gateway session cookie and tells the
// client where to land for its role.
func Login(svc *authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, cfg, result.Token, int(cfg.TTL().Seconds()))
		responses.WriteSuccess(w, map[string]any{
			"landing_path": result.LandingPath,
			"profile":      result.Session.Profile,
		})
	}
}

// Register creates the account upstream. No session is minted; the client is
// sent to the login page.
func Register(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Register(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"redirect": "/login",
		})
	}
}

// Logout destroys the session and clears the cookie.
func Logout(svc *authsvc.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess != nil {
			if err := svc.Logout(r.Context(), sess); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		setSessionCookie(w, cfg, "", -1)
		responses.WriteSuccess(w, map[string]string{"redirect": "/login"})
	}
}

// Profile returns the cached session identity.
func Profile(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in"))
			return
		}
		responses.WriteSuccess(w, sess.Profile)
	}
}

// UpdateProfile pushes a name/email change upstream and refreshes the
// session copy.
func UpdateProfile(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var payload authsvc.UpdateProfileInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateProfile(r.Context(), sess, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sess.Profile)
	}
}

// ChangePassword forwards a password change. The gateway never stores or
// hashes credentials itself.
func ChangePassword(svc *authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var payload authsvc.ChangePasswordInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ChangePassword(r.Context(), sess, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "password updated"})
	}
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
