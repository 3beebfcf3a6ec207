package types

import "github.com/shopspring/decimal"

// Product mirrors the backend's product record. Category (the resolved name)
// is only present on the marketplace listing endpoint.
type Product struct {
	ID            FlexInt         `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    FlexInt         `json:"category_id"`
	Category      string          `json:"category,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity FlexInt         `json:"stock_quantity"`
	Unit          string          `json:"unit"`
	Status        string          `json:"status"`
	UserID        FlexInt         `json:"user_id"`
	Image         string          `json:"image"`
	CreatedAt     string          `json:"created_at"`
}

type Category struct {
	ID          FlexInt `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UserID      FlexInt `json:"user_id"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type Crop struct {
	ID                FlexInt `json:"id"`
	Name              string  `json:"name"`
	Variety           string  `json:"variety"`
	Season            string  `json:"season"`
	DurationDays      FlexInt `json:"duration_days"`
	Region            string  `json:"region"`
	SoilType          string  `json:"soil_type"`
	SowingMethod      string  `json:"sowing_method"`
	YieldKgPerHectare FlexInt `json:"yield_kg_per_hectare"`
	Description       string  `json:"description"`
	Image             string  `json:"image"`
}

type Notification struct {
	NotificationID FlexInt `json:"notification_id"`
	Name           string  `json:"name"`
	Message        string  `json:"message"`
	IsRead         FlexInt `json:"is_read"`
	CreatedAt      string  `json:"created_at"`
}

// UserRecord is the admin panel's view of an account (no password material).
type UserRecord struct {
	ID        FlexInt `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"created_at"`
}

// DashboardStats backs the admin dashboard stat cards. The backend emits
// camelCase keys here, unlike every other endpoint.
type DashboardStats struct {
	TotalUsers    FlexInt `json:"totalUsers"`
	TotalProducts FlexInt `json:"totalProducts"`
	TotalOrders   FlexInt `json:"totalOrders"`
	ActiveAlerts  FlexInt `json:"activeAlerts"`
}
