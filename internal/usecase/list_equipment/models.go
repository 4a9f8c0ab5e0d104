package list_equipment

// Request holds catalog filters as parsed from the query string. Nil means "not set".
type Request struct {
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	MinPrice      *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice      *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
	AvailableOnly bool     `json:"available"`
	Latitude      *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	RadiusKm      *float64 `json:"radius" validate:"omitempty,gt=0,lte=1000"`
	Page          int      `json:"page" validate:"gte=1,lte=10000"`
	Limit         int      `json:"limit" validate:"gte=1,lte=100"`
}
