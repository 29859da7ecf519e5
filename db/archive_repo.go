package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vialtech/rutalerta/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArchiveRepository interface {
	// ArchiveStale copies every expired or retired report into the
	// historical store and removes it from the live table. Returns the
	// number of reports archived.
	ArchiveStale(now time.Time) (int, error)
	GetArchivesByStatus(status string, limit int) ([]models.ReportArchive, error)
}

type archiveRepo struct {
	DB *gorm.DB
}

func NewArchiveRepo(db *GormDB) ArchiveRepository {
	return &archiveRepo{db.DB}
}

// ArchiveStale is copy-then-delete: rows land in report_archives first
// (ON CONFLICT DO NOTHING makes re-runs idempotent), and only rows that
// were part of the copy are deleted from the live store. A half-finished
// sweep therefore leaves data in the live table, never loses it.
func (a *archiveRepo) ArchiveStale(now time.Time) (int, error) {
	archived := 0

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		var stale []models.Report
		if err := tx.Where(staleCondition(tx, now)).Find(&stale).Error; err != nil {
			return errors.Wrap(err, "selecting stale reports")
		}
		if len(stale) == 0 {
			return nil
		}

		archives := make([]models.ReportArchive, 0, len(stale))
		ids := make([]interface{}, 0, len(stale))
		for _, r := range stale {
			status := models.FinalStatusExpired
			if !r.IsActive {
				status = models.FinalStatusVotedOut
			}
			archives = append(archives, models.ReportArchive{
				ID:          r.ID,
				UserID:      r.UserID,
				Category:    r.Category,
				Description: r.Description,
				Latitude:    r.Latitude,
				Longitude:   r.Longitude,
				Score:       r.Score,
				CreatedAt:   r.CreatedAt,
				FinalStatus: status,
				ArchivedAt:  now,
			})
			ids = append(ids, r.ID)
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&archives).Error; err != nil {
			return errors.Wrap(err, "copying reports to history")
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Report{}).Error; err != nil {
			return errors.Wrap(err, "deleting archived reports")
		}

		archived = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return archived, nil
}

// staleCondition selects reports retired by votes plus reports older than
// their category window. The windows come from the same models.Category
// mapping the dedup lookup uses.
func staleCondition(tx *gorm.DB, now time.Time) *gorm.DB {
	cond := tx.Where("is_active = ?", false)
	for _, c := range models.Categories() {
		cond = cond.Or("category = ? AND created_at < ?", c, now.Add(-c.Window()))
	}
	return cond
}

func (a *archiveRepo) GetArchivesByStatus(status string, limit int) ([]models.ReportArchive, error) {
	var archives []models.ReportArchive
	query := a.DB.Order("archived_at DESC")
	if status != "" {
		query = query.Where("final_status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&archives).Error; err != nil {
		return nil, errors.Wrap(err, "listing archives")
	}
	return archives, nil
}
