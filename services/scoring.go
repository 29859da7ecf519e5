package services

import "github.com/vialtech/rutalerta/models"

// The scoring model: pure values and functions, no side effects. Every
// reward applied anywhere in the engine is defined here.

// RetireScoreThreshold retires a report once its score drops to or below
// this value. A hard threshold, not a percentage.
const RetireScoreThreshold = -5

// VoteWeight maps a voter's lifetime experience to the weight of a single
// vote. Thresholds are strictly greater-than.
func VoteWeight(experience int) int {
	weight := 1
	if experience > 50 {
		weight = 3
	}
	if experience > 500 {
		weight = 5
	}
	return weight
}

var (
	// CreationReward is applied to the submitter of a brand-new report.
	CreationReward = models.ReputationDelta{Points: 10, XP: 5, TotalReports: 1, DailyReports: 1}

	// CorroborationReward is applied to a submitter whose report collided
	// with an existing one and renewed it instead.
	CorroborationReward = models.ReputationDelta{Points: 3, XP: 2, TotalHelps: 1}

	// CorroborateVoteReward and RefuteVoteReward are applied to voters.
	// Refuting still pays: flagging a gone hazard helps the map.
	CorroborateVoteReward = models.ReputationDelta{Points: 2, XP: 1, TotalHelps: 1}
	RefuteVoteReward      = models.ReputationDelta{Points: 1, XP: 1, TotalHelps: 1}
)

// VoteReward returns the voter's reward for the given vote kind.
func VoteReward(kind models.VoteKind) models.ReputationDelta {
	if kind == models.VoteCorroborate {
		return CorroborateVoteReward
	}
	return RefuteVoteReward
}
