package domain

import "time"

type Stadium struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	OwnerID      int64     `json:"owner_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Address      string    `json:"address" gorm:"size:255;not null;index"`
	Contact      string    `json:"contact" gorm:"size:13"`
	Images       []string  `json:"images" gorm:"type:text;serializer:json"`
	PricePerHour int64     `json:"price_per_hour"`
	Latitude     float64   `json:"latitude" gorm:"index"`
	Longitude    float64   `json:"longitude" gorm:"index"`
	Description  string    `json:"description" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the plural gorm would otherwise inflect to "stadia".
func (Stadium) TableName() string { return "stadiums" }
