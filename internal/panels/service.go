// Package panels backs the role-scoped management screens: user accounts,
// categories, products, crops, notifications, and the dashboard stat cards.
// Lists are paginated in the gateway five rows at a time; supplier views are
// restricted to the session user's own records.
package panels

import (
	"context"
	"net/url"

	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

type upstreamClient interface {
	Get(ctx context.Context, endpoint string, query url.Values, out any) error
	GetBare(ctx context.Context, endpoint string, query url.Values, out any) error
	PostJSON(ctx context.Context, endpoint string, payload any, out any) error
	PutJSON(ctx context.Context, endpoint string, payload any, out any) error
	PostMultipart(ctx context.Context, endpoint string, fields map[string]string, file *upstream.FileUpload, out any) error
	PutMultipart(ctx context.Context, endpoint string, fields map[string]string, file *upstream.FileUpload, out any) error
	Delete(ctx context.Context, endpoint string, query url.Values) error
}

type imageResolver interface {
	ImageURL(pathPrefix, filename string) string
}

// Service implements the management panels against the backend.
type Service struct {
	upstream upstreamClient
	images   imageResolver
}

// NewService wires the panels service.
func NewService(client upstreamClient, images imageResolver) *Service {
	return &Service{upstream: client, images: images}
}

func (s *Service) resolveImage(prefix, filename string) string {
	if s.images == nil {
		return filename
	}
	return s.images.ImageURL(prefix, filename)
}
