package services

import (
	"testing"
	"time"

	"github.com/vialtech/rutalerta/config"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
)

type fakeUserRepo struct {
	balance     int
	err         error
	premiumCost int
	premiumDays int
	pointCost   int
	reportCount int
}

func (f *fakeUserRepo) UpdateUsername(uint, string) error                 { return f.err }
func (f *fakeUserRepo) UpdateVehicle(uint, *models.VehicleRequest) error  { return f.err }
func (f *fakeUserRepo) UpdateAvatar(uint, string) error                   { return f.err }
func (f *fakeUserRepo) RedeemPoints(_ uint, pointCost, reportCount int) (int, error) {
	f.pointCost, f.reportCount = pointCost, reportCount
	return f.balance, f.err
}
func (f *fakeUserRepo) RedeemPremium(_ uint, pointCost, days int, _ time.Time) (int, error) {
	f.premiumCost, f.premiumDays = pointCost, days
	return f.balance, f.err
}

func TestGetProfileComputesUsage(t *testing.T) {
	lastReport := time.Now()
	user := &models.User{
		Username:         "ana",
		Reputation:       120,
		DailyReportCount: 2,
		LastReportDate:   &lastReport,
	}
	user.ID = 3
	conf := &config.Config{FreeDailyReportLimit: 3}
	svc := NewUserService(&fakeUserRepo{}, &fakeAuthRepo{user: user}, conf)

	profile, err := svc.GetProfile(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ReportsUsed != 2 || profile.ReportsLimit != 3 {
		t.Errorf("usage = %d/%d, want 2/3", profile.ReportsUsed, profile.ReportsLimit)
	}
	if profile.IsPremium {
		t.Error("free user should not show as premium")
	}
}

func TestGetProfileExpiredPremium(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	user := &models.User{IsPremium: true, PremiumExpiresAt: &past}
	svc := NewUserService(&fakeUserRepo{}, &fakeAuthRepo{user: user}, &config.Config{})

	profile, err := svc.GetProfile(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.IsPremium {
		t.Error("expired premium must read as not premium")
	}
}

func TestRedeemPremiumUsesConfiguredPricing(t *testing.T) {
	repo := &fakeUserRepo{balance: 200}
	conf := &config.Config{PremiumPointCost: 1000, PremiumDays: 7}
	svc := NewUserService(repo, &fakeAuthRepo{}, conf)

	balance, err := svc.RedeemPremium(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.premiumCost != 1000 || repo.premiumDays != 7 {
		t.Errorf("pricing = %d points / %d days", repo.premiumCost, repo.premiumDays)
	}
	if balance != 200 {
		t.Errorf("balance = %d, want 200", balance)
	}
}

func TestRedeemPointsInsufficient(t *testing.T) {
	repo := &fakeUserRepo{err: errs.ErrInsufficientPoints}
	svc := NewUserService(repo, &fakeAuthRepo{}, &config.Config{})

	_, err := svc.RedeemPoints(1, &models.RedeemPointsRequest{PointCost: 50, ReportCount: 1})
	if !errs.Is(err, errs.ErrInsufficientPoints) {
		t.Errorf("got %v, want ErrInsufficientPoints", err)
	}
}
