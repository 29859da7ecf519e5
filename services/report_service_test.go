package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
)

type fakeReportRepo struct {
	lastParams db.SubmitParams
	outcome    *db.SubmitOutcome
	views      []models.ActiveReportView
	err        error
}

func (f *fakeReportRepo) SubmitReport(params db.SubmitParams) (*db.SubmitOutcome, error) {
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakeReportRepo) GetActiveReports(time.Time) ([]models.ActiveReportView, error) {
	return f.views, f.err
}

func (f *fakeReportRepo) GetReportByID(uuid.UUID) (*models.Report, error) { return nil, nil }

func floatPtr(v float64) *float64 { return &v }

func TestSubmitReportBuildsParams(t *testing.T) {
	repo := &fakeReportRepo{outcome: &db.SubmitOutcome{
		Report: &models.Report{ID: uuid.New()},
	}}
	conf := &config.Config{FreeDailyReportLimit: 3}
	svc := NewReportService(repo, conf)

	result, err := svc.SubmitReport(42, &models.ReportRequest{
		Category:  "roadworks",
		Latitude:  floatPtr(-32.97),
		Longitude: floatPtr(-68.78),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Corroborated {
		t.Error("expected a fresh report")
	}
	p := repo.lastParams
	if p.Window != 24*time.Hour {
		t.Errorf("window = %v, want 24h for roadworks", p.Window)
	}
	if p.RadiusMeters != models.DedupRadiusMeters {
		t.Errorf("radius = %f, want %f", p.RadiusMeters, models.DedupRadiusMeters)
	}
	if p.FreeDailyLimit != 3 {
		t.Errorf("free limit = %d, want 3", p.FreeDailyLimit)
	}
	if p.Creation != CreationReward || p.Corroboration != CorroborationReward {
		t.Error("scoring deltas not passed through")
	}
	if p.Report.ID == uuid.Nil {
		t.Error("report must get an id before storage")
	}
	if p.Report.UserID != 42 {
		t.Errorf("report user = %d, want 42", p.Report.UserID)
	}
}

func TestSubmitReportInvalidCategory(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &config.Config{})
	_, err := svc.SubmitReport(1, &models.ReportRequest{
		Category:  "pothole",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
	})
	if !errs.Is(err, errs.ErrInvalidCategory) {
		t.Errorf("got %v, want ErrInvalidCategory", err)
	}
}

func TestSubmitReportQuotaPassesThrough(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{err: errs.ErrQuotaExceeded}, &config.Config{})
	_, err := svc.SubmitReport(1, &models.ReportRequest{
		Category:  "accident",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
	})
	if !errs.Is(err, errs.ErrQuotaExceeded) {
		t.Errorf("got %v, want ErrQuotaExceeded", err)
	}
}

func TestSubmitReportWrapsInfrastructureFailure(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{err: fmt.Errorf("connection refused")}, &config.Config{})
	_, err := svc.SubmitReport(1, &models.ReportRequest{
		Category:  "accident",
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
	})
	if !errs.Is(err, errs.ErrStorageUnavailable) {
		t.Errorf("got %v, want wrapped ErrStorageUnavailable", err)
	}
}

func TestAsEngineErrorNil(t *testing.T) {
	if err := asEngineError(nil); err != nil {
		t.Errorf("nil must stay nil, got %v", err)
	}
}
