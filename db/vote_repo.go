package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// VoteParams carries one Vote transition. Weight and reward come from the
// scoring model; the repository only records and applies them.
type VoteParams struct {
	VoterID         uint
	ReportID        uuid.UUID
	Kind            models.VoteKind
	Weight          int
	RetireThreshold int
	Reward          models.ReputationDelta
	Now             time.Time
}

type VoteOutcome struct {
	Score   int
	Retired bool
}

type VoteRepository interface {
	CastVote(params VoteParams) (*VoteOutcome, error)
	CountVotesByReport(reportID uuid.UUID) (int64, error)
}

type voteRepo struct {
	DB *gorm.DB
}

func NewVoteRepo(db *GormDB) VoteRepository {
	return &voteRepo{db.DB}
}

// CastVote runs the Vote transition as one transaction. Preconditions are
// checked in order: report gone, self-vote, duplicate vote. The unique
// index on (user_id, report_id) backs the duplicate check against races
// the pre-read cannot see.
func (r *voteRepo) CastVote(params VoteParams) (*VoteOutcome, error) {
	var outcome VoteOutcome

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND is_active = TRUE", params.ReportID).
			First(&report).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrReportGone
			}
			return errors.Wrap(err, "locking report row")
		}

		if report.UserID == params.VoterID {
			return errs.ErrSelfVote
		}

		var prior models.Vote
		err = tx.Where("user_id = ? AND report_id = ?", params.VoterID, params.ReportID).
			First(&prior).Error
		if err == nil {
			return errs.ErrDuplicateVote
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "checking prior vote")
		}

		vote := models.Vote{
			UserID:    params.VoterID,
			ReportID:  params.ReportID,
			Kind:      params.Kind,
			CreatedAt: params.Now,
		}
		if err := tx.Create(&vote).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return errs.ErrDuplicateVote
			}
			return errors.Wrap(err, "recording vote")
		}

		switch params.Kind {
		case models.VoteCorroborate:
			// Corroboration renews the report's clock along with the score.
			if err := tx.Model(&models.Report{}).Where("id = ?", params.ReportID).
				Updates(map[string]interface{}{
					"created_at": params.Now,
					"score":      gorm.Expr("score + ?", params.Weight),
				}).Error; err != nil {
				return errors.Wrap(err, "applying corroborate vote")
			}
			outcome = VoteOutcome{Score: report.Score + params.Weight}

		case models.VoteRefute:
			newScore := report.Score - params.Weight
			updates := map[string]interface{}{
				"score": gorm.Expr("score - ?", params.Weight),
			}
			retired := newScore <= params.RetireThreshold
			if retired {
				updates["is_active"] = false
			}
			if err := tx.Model(&models.Report{}).Where("id = ?", params.ReportID).
				Updates(updates).Error; err != nil {
				return errors.Wrap(err, "applying refute vote")
			}
			outcome = VoteOutcome{Score: newScore, Retired: retired}

		default:
			return errs.New("unknown vote kind", 400)
		}

		return applyReputationDelta(tx, params.VoterID, params.Reward, nil)
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (r *voteRepo) CountVotesByReport(reportID uuid.UUID) (int64, error) {
	var count int64
	if err := r.DB.Model(&models.Vote{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "counting votes")
	}
	return count, nil
}
