package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/sarangart/agrizen-gateway/api/responses"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness: the session store must answer and the
// marketplace backend must be reachable.
func HealthReady(store, backend pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var errs error
		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store"))
			}
		}
		if backend != nil {
			if err := backend.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marketplace backend"))
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "not ready"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
