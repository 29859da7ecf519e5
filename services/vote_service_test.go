package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
)

type fakeVoteRepo struct {
	lastParams db.VoteParams
	outcome    *db.VoteOutcome
	err        error
}

func (f *fakeVoteRepo) CastVote(params db.VoteParams) (*db.VoteOutcome, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakeVoteRepo) CountVotesByReport(uuid.UUID) (int64, error) { return 0, nil }

type fakeAuthRepo struct {
	user        *models.User
	err         error
	emailErr    error
	usernameErr error
	created     *models.User
}

func (f *fakeAuthRepo) CreateUser(u *models.User) (*models.User, error) {
	f.created = u
	return u, nil
}
func (f *fakeAuthRepo) FindUserByEmail(string) (*models.User, error) { return f.user, f.err }
func (f *fakeAuthRepo) FindUserByID(uint) (*models.User, error)      { return f.user, f.err }
func (f *fakeAuthRepo) IsEmailExist(string) error                    { return f.emailErr }
func (f *fakeAuthRepo) IsUsernameExist(string) error                 { return f.usernameErr }

func TestCastVoteUsesVoterWeight(t *testing.T) {
	voter := &models.User{LifetimeXP: 600}
	voter.ID = 7
	voteRepo := &fakeVoteRepo{outcome: &db.VoteOutcome{Score: 7}}
	svc := NewVoteService(voteRepo, &fakeAuthRepo{user: voter}, &config.Config{})

	reportID := uuid.New()
	result, err := svc.CastVote(7, &models.VoteRequest{
		ReportID: reportID.String(),
		Kind:     "corroborate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voteRepo.lastParams.Weight != 5 {
		t.Errorf("weight = %d, want 5 for 600 xp", voteRepo.lastParams.Weight)
	}
	if voteRepo.lastParams.RetireThreshold != RetireScoreThreshold {
		t.Errorf("retire threshold = %d, want %d", voteRepo.lastParams.RetireThreshold, RetireScoreThreshold)
	}
	if voteRepo.lastParams.Reward != CorroborateVoteReward {
		t.Errorf("reward = %+v, want corroborate reward", voteRepo.lastParams.Reward)
	}
	if result.Weight != 5 || result.Score != 7 {
		t.Errorf("result = %+v", result)
	}
}

func TestCastVoteRefuteReward(t *testing.T) {
	voter := &models.User{LifetimeXP: 10}
	voteRepo := &fakeVoteRepo{outcome: &db.VoteOutcome{Score: -1}}
	svc := NewVoteService(voteRepo, &fakeAuthRepo{user: voter}, &config.Config{})

	_, err := svc.CastVote(1, &models.VoteRequest{
		ReportID: uuid.New().String(),
		Kind:     "refute",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if voteRepo.lastParams.Weight != 1 {
		t.Errorf("weight = %d, want 1 for novice", voteRepo.lastParams.Weight)
	}
	if voteRepo.lastParams.Reward != RefuteVoteReward {
		t.Errorf("reward = %+v, want refute reward", voteRepo.lastParams.Reward)
	}
}

func TestCastVoteRejectsBadInput(t *testing.T) {
	svc := NewVoteService(&fakeVoteRepo{}, &fakeAuthRepo{user: &models.User{}}, &config.Config{})

	if _, err := svc.CastVote(1, &models.VoteRequest{ReportID: "not-a-uuid", Kind: "refute"}); !errs.Is(err, errs.ErrBadRequest) {
		t.Errorf("bad uuid: got %v, want ErrBadRequest", err)
	}
	if _, err := svc.CastVote(1, &models.VoteRequest{ReportID: uuid.New().String(), Kind: "upvote"}); !errs.Is(err, errs.ErrBadRequest) {
		t.Errorf("bad kind: got %v, want ErrBadRequest", err)
	}
}

func TestCastVotePassesThroughEngineErrors(t *testing.T) {
	for _, sentinel := range []*errs.Error{errs.ErrSelfVote, errs.ErrDuplicateVote, errs.ErrReportGone} {
		svc := NewVoteService(&fakeVoteRepo{err: sentinel}, &fakeAuthRepo{user: &models.User{}}, &config.Config{})
		_, err := svc.CastVote(1, &models.VoteRequest{ReportID: uuid.New().String(), Kind: "refute"})
		if !errs.Is(err, sentinel) {
			t.Errorf("got %v, want %v", err, sentinel)
		}
	}
}
