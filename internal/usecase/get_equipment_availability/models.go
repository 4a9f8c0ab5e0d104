package get_equipment_availability

import (
	"time"

	"github.com/google/uuid"
)

// Request covers the days [From, To). Zero values select today and the default span.
type Request struct {
	EquipmentID uuid.UUID
	From        time.Time
	To          time.Time
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BookedWindow is a live booking clipped to the requested range. Parties are not disclosed.
type BookedWindow struct {
	Window
	Status string `json:"status"`
}

type Response struct {
	EquipmentID uuid.UUID      `json:"equipmentId"`
	Status      string         `json:"status"`
	Bookable    bool           `json:"bookable"`
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Booked      []BookedWindow `json:"booked"`
	Free        []Window       `json:"free"`
}
