package models

import (
	"time"

	"github.com/google/uuid"
)

type VoteKind string

const (
	VoteCorroborate VoteKind = "corroborate"
	VoteRefute      VoteKind = "refute"
)

func (k VoteKind) Valid() bool {
	return k == VoteCorroborate || k == VoteRefute
}

// Vote records a single community judgement on a report. A user gets one
// vote per report, ever; the database enforces it through the unique index.
type Vote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_votes_voter_report;not null"`
	ReportID  uuid.UUID `json:"report_id" gorm:"type:uuid;uniqueIndex:idx_votes_voter_report;not null"`
	Kind      VoteKind  `json:"kind" gorm:"type:varchar(16)"`
	CreatedAt time.Time `json:"created_at"`
}

type VoteRequest struct {
	ReportID string `json:"report_id" binding:"required,uuid"`
	Kind     string `json:"kind" binding:"required,oneof=corroborate refute"`
}

// VoteResult reports the score after the vote and whether the report was
// retired by crossing the negative threshold.
type VoteResult struct {
	ReportID uuid.UUID `json:"report_id"`
	Score    int       `json:"score"`
	Weight   int       `json:"weight"`
	Retired  bool      `json:"retired"`
}
