package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sarangart/agrizen-gateway/api/middleware"
	"github.com/sarangart/agrizen-gateway/api/responses"
	"github.com/sarangart/agrizen-gateway/api/validators"
	panelssvc "github.com/sarangart/agrizen-gateway/internal/panels"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/logger"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
)

// maxUploadBytes bounds product and crop image uploads.
const maxUploadBytes = 10 << 20

// AdminUsers lists accounts for the user management table.
func AdminUsers(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := svc.Users(r.Context(), page, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminUserSave creates or updates an account.
func AdminUserSave(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload panelssvc.SaveUserInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveUser(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// AdminUserDelete removes an account.
func AdminUserDelete(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "userId"))

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminCategories lists categories for the panel table.
func AdminCategories(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.ParsePage(r.URL.Query().Get("page"))
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := svc.Categories(r.Context(), page, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminCategorySave creates or updates a category, stamped with the session
// user as owner.
func AdminCategorySave(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		var payload panelssvc.SaveCategoryInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveCategory(r.Context(), sess, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// AdminCategoryDelete removes a category.
func AdminCategoryDelete(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "categoryId"))

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PanelProducts lists products for the admin and supplier tables. Suppliers
// only see their own records.
func PanelProducts(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		page := pagination.ParsePage(r.URL.Query().Get("page"))
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := svc.Products(r.Context(), sess, page, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductSave creates or updates a product from a multipart form.
func ProductSave(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		input := panelssvc.SaveProductInput{
			ID:            strings.TrimSpace(r.FormValue("id")),
			Name:          strings.TrimSpace(r.FormValue("name")),
			Description:   strings.TrimSpace(r.FormValue("description")),
			CategoryID:    strings.TrimSpace(r.FormValue("category_id")),
			Price:         strings.TrimSpace(r.FormValue("price")),
			StockQuantity: strings.TrimSpace(r.FormValue("stock_quantity")),
			Unit:          strings.TrimSpace(r.FormValue("unit")),
			Status:        strings.TrimSpace(r.FormValue("status")),
			ExistingImage: strings.TrimSpace(r.FormValue("existingImage")),
		}

		image, err := formImage(r, "image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeUpload(image)
		input.Image = image

		if err := validators.Struct(input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveProduct(r.Context(), sess, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// ProductDelete removes a product; suppliers can only delete their own.
func ProductDelete(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		id := strings.TrimSpace(chi.URLParam(r, "productId"))

		if err := svc.DeleteProduct(r.Context(), sess, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminCrops lists crop guides with name/variety search.
func AdminCrops(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
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

// CropSave creates or updates a crop guide from a multipart form.
func CropSave(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		input := panelssvc.SaveCropInput{
			ID:                strings.TrimSpace(r.FormValue("id")),
			Name:              strings.TrimSpace(r.FormValue("name")),
			Variety:           strings.TrimSpace(r.FormValue("variety")),
			Season:            strings.TrimSpace(r.FormValue("season")),
			DurationDays:      strings.TrimSpace(r.FormValue("duration_days")),
			Region:            strings.TrimSpace(r.FormValue("region")),
			SoilType:          strings.TrimSpace(r.FormValue("soil_type")),
			SowingMethod:      strings.TrimSpace(r.FormValue("sowing_method")),
			YieldKgPerHectare: strings.TrimSpace(r.FormValue("yield_kg_per_hectare")),
			Description:       strings.TrimSpace(r.FormValue("description")),
			ExistingImage:     strings.TrimSpace(r.FormValue("existingImage")),
		}

		image, err := formImage(r, "image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer closeUpload(image)
		input.Image = image

		if err := validators.Struct(input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveCrop(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// CropDelete removes a crop guide.
func CropDelete(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "cropId"))

		if err := svc.DeleteCrop(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminNotifications lists system notifications.
func AdminNotifications(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notifications, err := svc.Notifications(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, notifications)
	}
}

type notificationReadRequest struct {
	IsRead bool `json:"is_read"`
}

// NotificationRead toggles a notification's read flag.
func NotificationRead(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "notificationId"))

		var payload notificationReadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetNotificationRead(r.Context(), id, payload.IsRead); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// NotificationDelete removes a notification.
func NotificationDelete(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "notificationId"))

		if err := svc.DeleteNotification(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminDashboard returns the headline counters for the dashboard cards.
func AdminDashboard(svc *panelssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

func formImage(r *http.Request, field string) (*panelssvc.ImageUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid image upload")
	}

	return &panelssvc.ImageUpload{
		FileName: header.Filename,
		Content:  file,
	}, nil
}

func closeUpload(upload *panelssvc.ImageUpload) {
	if upload == nil {
		return
	}
	if closer, ok := upload.Content.(io.Closer); ok {
		closer.Close()
	}
}
