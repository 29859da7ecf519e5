package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
)

type VoteService interface {
	CastVote(voterID uint, req *models.VoteRequest) (*models.VoteResult, error)
}

type voteService struct {
	Config   *config.Config
	voteRepo db.VoteRepository
	authRepo db.AuthRepository
}

// NewVoteService instantiates a VoteService
func NewVoteService(voteRepo db.VoteRepository, authRepo db.AuthRepository, conf *config.Config) VoteService {
	return &voteService{
		Config:   conf,
		voteRepo: voteRepo,
		authRepo: authRepo,
	}
}

// CastVote drives the Vote transition. The vote's weight comes from the
// voter's lifetime experience; the repository enforces the gone / self /
// duplicate precondition order inside one transaction.
func (s *voteService) CastVote(voterID uint, req *models.VoteRequest) (*models.VoteResult, error) {
	reportID, err := uuid.Parse(req.ReportID)
	if err != nil {
		return nil, errs.ErrBadRequest
	}
	kind := models.VoteKind(req.Kind)
	if !kind.Valid() {
		return nil, errs.ErrBadRequest
	}

	voter, err := s.authRepo.FindUserByID(voterID)
	if err != nil {
		return nil, asEngineError(err)
	}
	weight := VoteWeight(voter.LifetimeXP)

	outcome, err := s.voteRepo.CastVote(db.VoteParams{
		VoterID:         voterID,
		ReportID:        reportID,
		Kind:            kind,
		Weight:          weight,
		RetireThreshold: RetireScoreThreshold,
		Reward:          VoteReward(kind),
		Now:             time.Now(),
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	return &models.VoteResult{
		ReportID: reportID,
		Score:    outcome.Score,
		Weight:   weight,
		Retired:  outcome.Retired,
	}, nil
}
