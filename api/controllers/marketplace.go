package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarangart/agrizen-gateway/api/responses"
	catalogsvc "github.com/sarangart/agrizen-gateway/internal/catalog"
	panelssvc "github.com/sarangart/agrizen-gateway/internal/panels"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
)

// Marketplace lists products with optional category and free-text filters.
func Marketplace(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := catalogsvc.ListFilter{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		}

		products, err := svc.Marketplace(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// Categories lists the catalog categories for the filter bar.
func Categories(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

// CropDirectory lists the crop guides for the public directory page.
func CropDirectory(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := svc.Crops(r.Context(), page, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductDetail returns one product by id.
func ProductDetail(svc *catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "productId"))

		product, err := svc.ProductDetail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
