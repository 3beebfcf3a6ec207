// Package catalog serves the public storefront: the marketplace listing,
// category list, and product detail. Category and search filters run in the
// gateway because the backend listing endpoint takes no parameters.
package catalog

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	Get(ctx context.Context, endpoint string, query url.Values, out any) error
}

type imageResolver interface {
	ImageURL(pathPrefix, filename string) string
}

// Service reads storefront data from the backend.
type Service struct {
	upstream upstreamClient
	images   imageResolver
}

// NewService wires the catalog service.
func NewService(client upstreamClient, images imageResolver) *Service {
	return &Service{upstream: client, images: images}
}

// ListFilter narrows the marketplace listing. An empty or "All" category
// matches everything; search matches product names case-insensitively.
type ListFilter struct {
	Category string
	Search   string
}

func (f ListFilter) matches(product types.Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, "All") && product.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Marketplace returns the filtered public listing with resolved image URLs.
func (s *Service) Marketplace(ctx context.Context, filter ListFilter) ([]types.Product, error) {
	var products []types.Product
	if err := s.upstream.Get(ctx, upstream.EndpointMarketplace, nil, &products); err != nil {
		return nil, err
	}

	filtered := make([]types.Product, 0, len(products))
	for _, product := range products {
		if !filter.matches(product) {
			continue
		}
		product.Image = s.resolveImage(product.Image)
		filtered = append(filtered, product)
	}
	return filtered, nil
}

// Categories returns the category list used by the marketplace filter.
func (s *Service) Categories(ctx context.Context) ([]types.Category, error) {
	var categories []types.Category
	if err := s.upstream.Get(ctx, upstream.EndpointCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ProductDetail fetches one product by ID.
func (s *Service) ProductDetail(ctx context.Context, id string) (types.Product, error) {
	if strings.TrimSpace(id) == "" {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	query := url.Values{"id": []string{id}}
	var product types.Product
	if err := s.upstream.Get(ctx, upstream.EndpointProductDetails, query, &product); err != nil {
		return types.Product{}, err
	}
	if product.ID.Int() == 0 {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product.Image = s.resolveImage(product.Image)
	return product, nil
}

func (s *Service) resolveImage(filename string) string {
	if s.images == nil {
		return filename
	}
	return s.images.ImageURL(upstream.ProductImagePath, filename)
}
