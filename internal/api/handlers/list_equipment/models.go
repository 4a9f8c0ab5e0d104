package list_equipment

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/heavyrent/rental-service/internal/domain"
	listEquipment "github.com/heavyrent/rental-service/internal/usecase/list_equipment"
)

// parseQuery maps catalog query parameters onto the use case request.
// Unparseable numbers are reported per parameter.
func parseQuery(q url.Values, page, limit int) (*listEquipment.Request, error) {
	verr := domain.NewValidationError()
	req := &listEquipment.Request{
		Category: optionalString(q, "category"),
		City:     optionalString(q, "city"),
		Page:     page,
		Limit:    limit,
	}

	req.MinPrice = optionalFloat(q, "minPrice", verr)
	req.MaxPrice = optionalFloat(q, "maxPrice", verr)
	req.Latitude = optionalFloat(q, "latitude", verr)
	req.Longitude = optionalFloat(q, "longitude", verr)
	req.RadiusKm = optionalFloat(q, "radius", verr)

	if v := q.Get("available"); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			verr.Add("available", "must be true or false")
		}
		req.AvailableOnly = available
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return req, nil
}

func optionalString(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func optionalFloat(q url.Values, key string, verr *domain.ValidationError) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		verr.Add(key, "must be a number")
		return nil
	}
	return &f
}
