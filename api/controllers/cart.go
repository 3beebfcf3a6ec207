package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/api/responses"
	"github.com/sarangart/agrizen-gateway/api/validators"
	cartsvc "github.com/sarangart/agrizen-gateway/internal/cart"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
)

// CartGet fetches the session user's cart with recomputed totals.
func CartGet(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		snapshot, err := svc.Fetch(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

// CartAdd adds a line item and returns the refreshed cart. A duplicate
// submit inside the debounce window is rejected.
func CartAdd(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var payload cartsvc.AddInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Add(r.Context(), sess, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, snapshot)
	}
}

// CartRemove deletes a line item and returns the refreshed cart.
func CartRemove(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		cartID := strings.TrimSpace(chi.URLParam(r, "cartId"))
		if cartID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required"))
			return
		}

		snapshot, err := svc.Remove(r.Context(), sess, cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
