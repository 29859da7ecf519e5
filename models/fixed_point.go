package models

import (
	"time"

	"github.com/google/uuid"
)

// FixedPoint is a static point of interest (hospital, police station,
// workshop) seeded by the offline importer. Never touched by the report
// lifecycle engine.
type FixedPoint struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name"`
	Type      string    `json:"type" gorm:"type:varchar(32);index"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Hours     string    `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
}

type FixedPointRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Hours     string   `json:"hours"`
}
