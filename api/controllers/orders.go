package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/api/responses"
	"github.com/sarangart/agrizen-gateway/api/validators"
	orderssvc "github.com/sarangart/agrizen-gateway/internal/orders"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
)

// OrderHistory lists the session user's own orders.
func OrderHistory(svc *orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		orders, err := svc.History(r.Context(), sess)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// AdminOrders lists all orders, paginated for the admin table.
func AdminOrders(svc *orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))

		result, err := svc.AdminList(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type orderStatusRequest struct {
	OrderStatus   string `json:"order_status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// AdminOrderStatus changes exactly one of the order's two status fields.
func AdminOrderStatus(svc *orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orderssvc.UpdateStatusInput{
			OrderID:       strings.TrimSpace(chi.URLParam(r, "orderId")),
			OrderStatus:   payload.OrderStatus,
			PaymentStatus: payload.PaymentStatus,
		}

		if err := svc.UpdateStatus(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// AdminOrderDelete removes an order record.
func AdminOrderDelete(svc *orderssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))

		if err := svc.Delete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
