package catalog

import "stadiumbooking/internal/domain"

// ---------- STADIUM ----------

type StadiumRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Address      string   `json:"address" validate:"required,max=255"`
	Contact      string   `json:"contact" validate:"omitempty,max=13,contact"`
	Images       []string `json:"images" validate:"omitempty,dive,max=512"`
	PricePerHour int64    `json:"price_per_hour" validate:"gte=0"`
	Latitude     float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude    float64  `json:"longitude" validate:"gte=-180,lte=180"`
	Description  string   `json:"description" validate:"max=5000"`
}

// ---------- SEARCH ----------

type SearchQuery struct {
	Date      domain.Date
	Start     domain.TimeOfDay
	End       domain.TimeOfDay
	Latitude  float64
	Longitude float64
}

// StadiumDistance is a search hit: the stadium and its distance from the
// query point.
type StadiumDistance struct {
	domain.Stadium
	DistanceKm float64 `json:"distance_km"`
}
