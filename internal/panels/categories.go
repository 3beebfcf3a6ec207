package panels

import (
	"context"
	"net/url"
	"strings"

	"github.com/sarangart/agrizen-gateway/internal/session"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// CategoryPage is one page of the category table.
type CategoryPage struct {
	Categories []types.Category `json:"categories"`
	Meta       pagination.Meta  `json:"meta"`
}

// Categories lists all categories, paginated, with an optional name
// substring search.
func (s *Service) Categories(ctx context.Context, page int, search string) (CategoryPage, error) {
	var categories []types.Category
	if err := s.upstream.Get(ctx, upstream.EndpointCategories, nil, &categories); err != nil {
		return CategoryPage{}, err
	}

	if needle := strings.ToLower(strings.TrimSpace(search)); needle != "" {
		filtered := categories[:0]
		for _, category := range categories {
			if strings.Contains(strings.ToLower(category.Name), needle) {
				filtered = append(filtered, category)
			}
		}
		categories = filtered
	}

	pageItems, meta := pagination.Paginate(categories, page, pagination.DefaultPageSize)
	return CategoryPage{Categories: pageItems, Meta: meta}, nil
}

// SaveCategoryInput creates or updates a category; a non-empty ID means
// update. The owner is always the session user.
type SaveCategoryInput struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// SaveCategory writes the category through the backend.
func (s *Service) SaveCategory(ctx context.Context, sess *session.Session, input SaveCategoryInput) error {
	payload := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"user_id":     sess.Profile.UserID,
	}
	if input.Status != "" {
		payload["status"] = input.Status
	}

	if input.ID != "" {
		payload["id"] = input.ID
		return s.upstream.PutJSON(ctx, upstream.EndpointCategories, payload, nil)
	}
	return s.upstream.PostJSON(ctx, upstream.EndpointCategories, payload, nil)
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	query := url.Values{"id": []string{id}}
	return s.upstream.Delete(ctx, upstream.EndpointCategories, query)
}
