package models

// ReputationDelta is a relative change applied to a user's counters inside
// an engine transaction. Values are deltas, never absolute targets, so
// concurrent updates stay correct.
type ReputationDelta struct {
	Points       int
	XP           int
	TotalReports int
	TotalHelps   int
	DailyReports int
}
