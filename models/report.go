package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a road report and fixes how long it stays relevant.
type Category string

const (
	CategoryCheckpoint Category = "checkpoint"
	CategoryAccident   Category = "accident"
	CategoryRoadworks  Category = "roadworks"
)

// DedupRadiusMeters is the radius inside which a new submission is folded
// into an existing active report of the same category.
const DedupRadiusMeters = 50.0

func (c Category) Valid() bool {
	switch c {
	case CategoryCheckpoint, CategoryAccident, CategoryRoadworks:
		return true
	}
	return false
}

// Window returns how long a report of this category counts as alive.
// The duplicate lookup and the archival sweep must both read this value,
// otherwise "alive for dedup" and "alive for archival" drift apart.
func (c Category) Window() time.Duration {
	if c == CategoryRoadworks {
		return 24 * time.Hour
	}
	return 2 * time.Hour
}

// Categories lists every valid category.
func Categories() []Category {
	return []Category{CategoryCheckpoint, CategoryAccident, CategoryRoadworks}
}

// Report is a live citizen road report. CreatedAt is renewed by
// corroborating votes and repeat sightings; it drives expiry, not the
// original submission time.
type Report struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Category    Category  `json:"category" gorm:"type:varchar(32);index"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Score       int       `json:"score" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// Terminal statuses recorded when a report leaves the live store.
const (
	FinalStatusExpired  = "expired"
	FinalStatusVotedOut = "voted_out"
)

// ReportArchive is the historical copy of a retired or expired report.
// Rows are append-only and immutable once written.
type ReportArchive struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uint      `json:"user_id"`
	Category    Category  `json:"category" gorm:"type:varchar(32)"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	FinalStatus string    `json:"final_status" gorm:"type:varchar(16)"`
	ArchivedAt  time.Time `json:"archived_at"`
}

// ReportRequest is the submission payload from the request layer.
// Coordinates are WGS84 degrees.
type ReportRequest struct {
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
}

// SubmitResult tells the caller whether the submission created a new report
// or corroborated an existing one.
type SubmitResult struct {
	Report       *Report `json:"report"`
	Corroborated bool    `json:"corroborated"`
}

// ActiveReportView is a live report joined with its author for the map feed.
type ActiveReportView struct {
	ID          uuid.UUID `json:"id"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	AuthorXP    int       `json:"author_xp"`
}
