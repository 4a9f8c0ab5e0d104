package list_equipment

import (
	"strings"

	"github.com/heavyrent/rental-service/internal/domain"
	"github.com/heavyrent/rental-service/internal/validation"
)

func validateRequest(req *Request) error {
	verr := domain.NewValidationError()
	validation.Into(verr, req)

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		verr.Add("maxPrice", "must be greater than or equal to minPrice")
	}
	if req.RadiusKm != nil && (req.Latitude == nil || req.Longitude == nil) {
		verr.Add("radius", "requires latitude and longitude")
	}
	return verr.OrNil()
}

// toFilter drops blank text filters and applies the default radius.
func toFilter(req *Request) domain.EquipmentFilter {
	f := domain.EquipmentFilter{
		Category:      nonBlank(req.Category),
		City:          nonBlank(req.City),
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		AvailableOnly: req.AvailableOnly,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RadiusKm:      domain.DefaultSearchRadiusKm,
		Page:          req.Page,
		Limit:         req.Limit,
	}
	if req.RadiusKm != nil {
		f.RadiusKm = *req.RadiusKm
	}
	return f
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
