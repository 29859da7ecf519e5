package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// haversineSQL mirrors geo.Distance on the database side: great-circle
// meters between a report row and the candidate point (lat, lat, lng).
const haversineSQL = `(2 * 6371000 * asin(sqrt(` +
	`power(sin(radians(latitude - ?) / 2), 2) + ` +
	`cos(radians(?)) * cos(radians(latitude)) * ` +
	`power(sin(radians(longitude - ?) / 2), 2))))`

// SubmitParams carries one Submit transition into the store. The scoring
// deltas are computed by the caller; the repository only applies them.
type SubmitParams struct {
	UserID         uint
	Report         *models.Report
	Window         time.Duration
	RadiusMeters   float64
	FreeDailyLimit int
	Creation       models.ReputationDelta
	Corroboration  models.ReputationDelta
	Now            time.Time
}

type SubmitOutcome struct {
	Report       *models.Report
	Corroborated bool
}

type ReportRepository interface {
	SubmitReport(params SubmitParams) (*SubmitOutcome, error)
	GetActiveReports(now time.Time) ([]models.ActiveReportView, error)
	GetReportByID(id uuid.UUID) (*models.Report, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

// SubmitReport runs the whole Submit transition as one transaction: quota
// evaluation, duplicate lookup and the resulting renewal or insert all
// commit together or not at all.
func (r *reportRepo) SubmitReport(params SubmitParams) (*SubmitOutcome, error) {
	var outcome SubmitOutcome

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the submitter's row so two concurrent submissions cannot
		// both pass the quota check.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, params.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return errors.Wrap(err, "locking user row")
		}

		rolledOver := user.ReportsUsedOn(params.Now) == 0 && user.DailyReportCount != 0

		report := params.Report
		var existing models.Report
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("category = ? AND is_active = TRUE AND created_at > ?",
				report.Category, params.Now.Add(-params.Window)).
			Where(haversineSQL+" < ?",
				report.Latitude, report.Latitude, report.Longitude, params.RadiusMeters).
			Order("created_at ASC, id ASC").
			First(&existing).Error

		switch {
		case err == nil:
			// Repeat sighting: renew the existing report and reward the
			// submitter. Does not consume the daily quota.
			if err := tx.Model(&models.Report{}).Where("id = ?", existing.ID).
				Update("created_at", params.Now).Error; err != nil {
				return errors.Wrap(err, "renewing report")
			}
			existing.CreatedAt = params.Now
			if err := applyReputationDelta(tx, params.UserID, params.Corroboration, nil); err != nil {
				return err
			}
			outcome = SubmitOutcome{Report: &existing, Corroborated: true}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			used := user.ReportsUsedOn(params.Now)
			if !user.PremiumActive(params.Now) && used >= params.FreeDailyLimit {
				return errs.ErrQuotaExceeded
			}

			report.Score = 0
			report.IsActive = true
			report.CreatedAt = params.Now
			if err := tx.Create(report).Error; err != nil {
				return errors.Wrap(err, "inserting report")
			}

			if rolledOver || user.LastReportDate == nil {
				// First submission of a new calendar day resets the counter.
				if err := tx.Model(&models.User{}).Where("id = ?", params.UserID).
					Updates(map[string]interface{}{
						"daily_report_count": 0,
						"last_report_date":   params.Now,
					}).Error; err != nil {
					return errors.Wrap(err, "resetting daily counter")
				}
			}
			if err := applyReputationDelta(tx, params.UserID, params.Creation, &params.Now); err != nil {
				return err
			}
			outcome = SubmitOutcome{Report: report, Corroborated: false}
			return nil

		default:
			return errors.Wrap(err, "duplicate lookup")
		}
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// applyReputationDelta applies relative counter changes to the user row.
// reportDate is set only when the delta consumes daily quota.
func applyReputationDelta(tx *gorm.DB, userID uint, d models.ReputationDelta, reportDate *time.Time) error {
	updates := map[string]interface{}{}
	if d.Points != 0 {
		updates["reputation"] = gorm.Expr("reputation + ?", d.Points)
	}
	if d.XP != 0 {
		updates["lifetime_xp"] = gorm.Expr("lifetime_xp + ?", d.XP)
	}
	if d.TotalReports != 0 {
		updates["total_reports"] = gorm.Expr("total_reports + ?", d.TotalReports)
	}
	if d.TotalHelps != 0 {
		updates["total_helps"] = gorm.Expr("total_helps + ?", d.TotalHelps)
	}
	if d.DailyReports != 0 {
		updates["daily_report_count"] = gorm.Expr("daily_report_count + ?", d.DailyReports)
		if reportDate != nil {
			updates["last_report_date"] = *reportDate
		}
	}
	if len(updates) == 0 {
		return nil
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return errors.Wrap(err, "applying reputation delta")
	}
	return nil
}

// GetActiveReports lists live reports still inside their category window,
// joined with the author for the map feed.
func (r *reportRepo) GetActiveReports(now time.Time) ([]models.ActiveReportView, error) {
	var views []models.ActiveReportView
	query := r.DB.Model(&models.Report{}).
		Select("reports.id, reports.category, reports.description, reports.latitude, reports.longitude, " +
			"reports.score, reports.created_at, reports.user_id, users.username, users.lifetime_xp AS author_xp").
		Joins("JOIN users ON users.id = reports.user_id").
		Where("reports.is_active = TRUE")

	// Each category has its own liveness window; expired rows are hidden
	// even before the sweep picks them up.
	windowCond := r.DB.Where("1 = 0")
	for _, c := range models.Categories() {
		windowCond = windowCond.Or("reports.category = ? AND reports.created_at > ?", c, now.Add(-c.Window()))
	}
	query = query.Where(windowCond)

	if err := query.Order("reports.created_at DESC").Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("error listing active reports: %w", err)
	}
	return views, nil
}

func (r *reportRepo) GetReportByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.DB.Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrReportGone
		}
		return nil, fmt.Errorf("error retrieving report %s: %w", id, err)
	}
	return &report, nil
}
