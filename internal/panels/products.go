package panels

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/sarangart/agrizen-gateway/internal/session"
	"github.com/sarangart/agrizen-gateway/pkg/enums"
	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// ProductPage is one page of the product table.
type ProductPage struct {
	Products []types.Product `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

// Products lists products for the panel. Suppliers only ever see their own
// records; admins see everything.
func (s *Service) Products(ctx context.Context, sess *session.Session, page int, search string) (ProductPage, error) {
	products, err := s.fetchProductsFor(ctx, sess)
	if err != nil {
		return ProductPage{}, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := products[:0]
		for _, product := range products {
			if strings.Contains(strings.ToLower(product.Name), needle) {
				filtered = append(filtered, product)
			}
		}
		products = filtered
	}

	for i := range products {
		products[i].Image = s.resolveImage(upstream.ProductImagePath, products[i].Image)
	}

	pageItems, meta := pagination.Paginate(products, page, pagination.DefaultPageSize)
	return ProductPage{Products: pageItems, Meta: meta}, nil
}

func (s *Service) fetchProductsFor(ctx context.Context, sess *session.Session) ([]types.Product, error) {
	query := url.Values{}
	if sess.Profile.Role == enums.RoleSupplier {
		query.Set("user_id", sess.Profile.UserID.String())
	}

	var products []types.Product
	if err := s.upstream.Get(ctx, upstream.EndpointProducts, query, &products); err != nil {
		return nil, err
	}

	// The backend ignores the user_id parameter on some deployments, so the
	// supplier scope is enforced here regardless.
	if sess.Profile.Role == enums.RoleSupplier {
		owned := products[:0]
		for _, product := range products {
			if product.UserID.Int() == sess.Profile.UserID.Int() {
				owned = append(owned, product)
			}
		}
		products = owned
	}
	return products, nil
}

// ImageUpload is a replacement product or crop image.
type ImageUpload struct {
	FileName string
	Content  io.Reader
}

// SaveProductInput creates or updates a product. A non-empty ID means
// update; on update without a new image the existing filename is resent so
// the backend keeps it.
type SaveProductInput struct {
	ID            string `validate:"omitempty"`
	Name          string `validate:"required"`
	Description   string
	CategoryID    string `validate:"required"`
	Price         string `validate:"required"`
	StockQuantity string `validate:"required"`
	Unit          string
	Status        string
	ExistingImage string
	Image         *ImageUpload
}

// SaveProduct writes the product through the backend. The record owner is
// always the session user; suppliers can only touch their own records.
func (s *Service) SaveProduct(ctx context.Context, sess *session.Session, input SaveProductInput) error {
	if input.Image == nil && input.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "an image is required for new products")
	}

	if input.ID != "" && sess.Profile.Role == enums.RoleSupplier {
		if err := s.checkProductOwnership(ctx, sess, input.ID); err != nil {
			return err
		}
	}

	fields := map[string]string{
		"id":             input.ID,
		"name":           input.Name,
		"description":    input.Description,
		"category_id":    input.CategoryID,
		"price":          input.Price,
		"stock_quantity": input.StockQuantity,
		"unit":           input.Unit,
		"status":         input.Status,
		"user_id":        sess.Profile.UserID.String(),
	}

	var file *upstream.FileUpload
	if input.Image != nil {
		file = &upstream.FileUpload{FieldName: "image", FileName: input.Image.FileName, Content: input.Image.Content}
	} else if input.ExistingImage != "" {
		fields["existingImage"] = input.ExistingImage
	}

	if input.ID != "" {
		return s.upstream.PutMultipart(ctx, upstream.EndpointProducts, fields, file, nil)
	}
	return s.upstream.PostMultipart(ctx, upstream.EndpointProducts, fields, file, nil)
}

// DeleteProduct removes a product. Suppliers can only delete their own.
func (s *Service) DeleteProduct(ctx context.Context, sess *session.Session, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if sess.Profile.Role == enums.RoleSupplier {
		if err := s.checkProductOwnership(ctx, sess, id); err != nil {
			return err
		}
	}
	query := url.Values{"id": []string{id}}
	return s.upstream.Delete(ctx, upstream.EndpointProducts, query)
}

func (s *Service) checkProductOwnership(ctx context.Context, sess *session.Session, id string) error {
	owned, err := s.fetchProductsFor(ctx, sess)
	if err != nil {
		return err
	}
	for _, product := range owned {
		if product.ID.String() == id {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another supplier")
}
