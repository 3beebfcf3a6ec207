// Package orders serves the buyer's order history and the admin order desk.
// Mutations always re-read the list so callers see the backend's state, not
// an optimistic local copy.
package orders

import (
	"context"
	"net/url"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	Get(ctx context.Context, endpoint string, query url.Values, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
	Delete(ctx context.Context, endpoint string, query url.Values) error
}

// Service reads and manages orders through the backend.
type Service struct {
	upstream upstreamClient
}

// NewService wires the orders service.
func NewService(client upstreamClient) *Service {
	return &Service{upstream: client}
}

// History returns the session user's orders.
func (s *Service) History(ctx context.Context, sess *session.Session) ([]types.Order, error) {
	query := url.Values{"user_id": []string{sess.Profile.UserID.String()}}
	var orders []types.Order
	if err := s.upstream.Get(ctx, upstream.EndpointOrders, query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminPage is one page of the admin order desk.
type AdminPage struct {
	Orders []types.Order   `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// AdminList returns one page of all orders.
func (s *Service) AdminList(ctx context.Context, page int) (AdminPage, error) {
	var orders []types.Order
	if err := s.upstream.Get(ctx, upstream.EndpointAdminOrders, nil, &orders); err != nil {
		return AdminPage{}, err
	}
	pageItems, meta := pagination.Paginate(orders, page, pagination.DefaultPageSize)
	return AdminPage{Orders: pageItems, Meta: meta}, nil
}

// UpdateStatusInput changes one of the two status fields on an order.
type UpdateStatusInput struct {
	OrderID       string `json:"order_id" validate:"required"`
	OrderStatus   string `json:"order_status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// UpdateStatus pushes a status change. Exactly one of the two fields must be
// set, and its value must be one the backend's selectors offer.
func (s *Service) UpdateStatus(ctx context.Context, input UpdateStatusInput) error {
	if (input.OrderStatus == "") == (input.PaymentStatus == "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "set exactly one of order_status or payment_status")
	}

	payload := map[string]any{"order_id": input.OrderID}
	if input.OrderStatus != "" {
		status, err := enums.ParseOrderStatus(input.OrderStatus)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
		payload["order_status"] = status
	} else {
		status, err := enums.ParsePaymentStatus(input.PaymentStatus)
		if err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status")
		}
		payload["payment_status"] = status
	}

	return s.upstream.PutJSON(ctx, upstream.EndpointAdminOrders, payload, nil)
}

// Delete removes an order from the desk.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	if orderID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	query := url.Values{"order_id": []string{orderID}}
	return s.upstream.Delete(ctx, upstream.EndpointAdminOrders, query)
}
