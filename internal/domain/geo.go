package domain

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceFrom returns the distance of e from the point and false when e has no coordinates.
func (e *Equipment) DistanceFrom(lat, lng float64) (float64, bool) {
	if !e.HasCoordinates() {
		return 0, false
	}
	return HaversineKm(lat, lng, *e.Latitude, *e.Longitude), true
}

// WithinRadius keeps items lacking coordinates: listings that were never geocoded stay visible.
func (e *Equipment) WithinRadius(lat, lng, radiusKm float64) bool {
	d, ok := e.DistanceFrom(lat, lng)
	if !ok {
		return true
	}
	return d <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
