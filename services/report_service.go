package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
)

type ReportService interface {
	SubmitReport(userID uint, req *models.ReportRequest) (*models.SubmitResult, error)
	GetActiveReports() ([]models.ActiveReportView, error)
}

type reportService struct {
	Config     *config.Config
	reportRepo db.ReportRepository
}

// NewReportService instantiates a ReportService
func NewReportService(reportRepo db.ReportRepository, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		reportRepo: reportRepo,
	}
}

// SubmitReport drives the Submit transition: either a brand-new report or
// a corroboration of an existing one inside the category's dedup window.
// The submitter is rewarded either way; only a new report consumes quota.
func (s *reportService) SubmitReport(userID uint, req *models.ReportRequest) (*models.SubmitResult, error) {
	category := models.Category(req.Category)
	if !category.Valid() {
		return nil, errs.ErrInvalidCategory
	}

	report := &models.Report{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    category,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	}

	outcome, err := s.reportRepo.SubmitReport(db.SubmitParams{
		UserID:         userID,
		Report:         report,
		Window:         category.Window(),
		RadiusMeters:   models.DedupRadiusMeters,
		FreeDailyLimit: s.Config.FreeDailyReportLimit,
		Creation:       CreationReward,
		Corroboration:  CorroborationReward,
		Now:            time.Now(),
	})
	if err != nil {
		return nil, asEngineError(err)
	}

	return &models.SubmitResult{
		Report:       outcome.Report,
		Corroborated: outcome.Corroborated,
	}, nil
}

func (s *reportService) GetActiveReports() ([]models.ActiveReportView, error) {
	views, err := s.reportRepo.GetActiveReports(time.Now())
	if err != nil {
		return nil, asEngineError(err)
	}
	return views, nil
}

// asEngineError passes business-rule rejections through untouched and
// folds everything else into the transient storage failure, which callers
// may safely retry.
func asEngineError(err error) error {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return fmt.Errorf("%v: %w", err, errs.ErrStorageUnavailable)
}
