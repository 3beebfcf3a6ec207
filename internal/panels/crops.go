package panels

import (
	"context"
	"net/url"
	"strings"

	pkgerrors "github.com/sarangart/agrizen-gateway/pkg/errors"
	"github.com/sarangart/agrizen-gateway/pkg/pagination"
	"github.com/sarangart/agrizen-gateway/pkg/types"
	"github.com/sarangart/agrizen-gateway/pkg/upstream"
)

// CropPage is one page of the crop knowledge base.
type CropPage struct {
	Crops []types.Crop    `json:"crops"`
	Meta  pagination.Meta `json:"meta"`
}

// Crops lists the crop records, filtered by a name/variety substring and
// paginated.
func (s *Service) Crops(ctx context.Context, page int, search string) (CropPage, error) {
	var crops []types.Crop
	if err := s.upstream.Get(ctx, upstream.EndpointCrops, nil, &crops); err != nil {
		return CropPage{}, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := crops[:0]
		for _, crop := range crops {
			if strings.Contains(strings.ToLower(crop.Name), needle) ||
				strings.Contains(strings.ToLower(crop.Variety), needle) {
				filtered = append(filtered, crop)
			}
		}
		crops = filtered
	}

	for i := range crops {
		crops[i].Image = s.resolveImage(upstream.CropImagePath, crops[i].Image)
	}

	pageItems, meta := pagination.Paginate(crops, page, pagination.DefaultPageSize)
	return CropPage{Crops: pageItems, Meta: meta}, nil
}

// SaveCropInput creates or updates a crop record; a non-empty ID means
// update.
type SaveCropInput struct {
	ID                string
	Name              string `validate:"required"`
	Variety           string
	Season            string
	DurationDays      string
	Region            string
	SoilType          string
	SowingMethod      string
	YieldKgPerHectare string
	Description       string
	ExistingImage     string
	Image             *ImageUpload
}

// SaveCrop writes the crop record through the backend.
func (s *Service) SaveCrop(ctx context.Context, input SaveCropInput) error {
	fields := map[string]string{
		"name":                 input.Name,
		"variety":              input.Variety,
		"season":               input.Season,
		"duration_days":        input.DurationDays,
		"region":               input.Region,
		"soil_type":            input.SoilType,
		"sowing_method":        input.SowingMethod,
		"yield_kg_per_hectare": input.YieldKgPerHectare,
		"description":          input.Description,
	}

	var file *upstream.FileUpload
	if input.Image != nil {
		file = &upstream.FileUpload{FieldName: "image", FileName: input.Image.FileName, Content: input.Image.Content}
	}

	if input.ID != "" {
		fields["id"] = input.ID
		if input.Image == nil && input.ExistingImage != "" {
			fields["existingImage"] = input.ExistingImage
		}
		return s.upstream.PutMultipart(ctx, upstream.EndpointCrops, fields, file, nil)
	}

	if file == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "an image is required for new crops")
	}
	return s.upstream.PostMultipart(ctx, upstream.EndpointCrops, fields, file, nil)
}

// DeleteCrop removes a crop record.
func (s *Service) DeleteCrop(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "crop id is required")
	}
	query := url.Values{"id": []string{id}}
	return s.upstream.Delete(ctx, upstream.EndpointCrops, query)
}
