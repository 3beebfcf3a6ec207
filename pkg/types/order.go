package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Order is a backend-owned record. The gateway reads and displays it or
// submits a creation payload; it never owns the lifecycle.
type Order struct {
	OrderID         FlexInt         `json:"order_id"`
	UserID          FlexInt         `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OrderStatus     string          `json:"order_status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	CreatedAt       string          `json:"created_at"`
}

// UnmarshalJSON tolerates the user-facing order endpoint, which puts the
// fulfilment state under "status" instead of "order_status".
func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		Status string `json:"status"`
	}{alias: (*alias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if o.OrderStatus == "" && aux.Status != "" {
		o.OrderStatus = aux.Status
	}
	return nil
}
