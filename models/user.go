package models

import (
	"errors"
	"fmt"
	"time"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user of the application. Reputation is the spendable
// point balance; LifetimeXP only ever grows and drives vote weight.
type User struct {
	Model
	Username         string     `json:"username" gorm:"unique;not null" binding:"required,min=2" conform:"trim"`
	Email            string     `json:"email" gorm:"unique;not null" binding:"required,email" conform:"trim,lower"`
	Password         string     `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword   string     `json:"-"`
	Province         string     `json:"province" conform:"trim"`
	Locality         string     `json:"locality" conform:"trim"`
	Reputation       int        `json:"reputation" gorm:"default:0"`
	LifetimeXP       int        `json:"lifetime_xp" gorm:"default:0"`
	TotalReports     int        `json:"total_reports" gorm:"default:0"`
	TotalHelps       int        `json:"total_helps" gorm:"default:0"`
	DailyReportCount int        `json:"daily_report_count" gorm:"default:0"`
	LastReportDate   *time.Time `json:"last_report_date"`
	IsPremium        bool       `json:"is_premium" gorm:"default:false"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
	VehicleType      string     `json:"vehicle_type"`
	PlateNumber      string     `json:"plate_number"`
	VehicleModel     string     `json:"vehicle_model"`
	AvatarData       string     `json:"avatar_data,omitempty" gorm:"type:text"`
}

// PremiumActive evaluates the time-boxed entitlement: the stored flag alone
// is not enough, the expiry has to be in the future.
func (u *User) PremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumExpiresAt == nil {
		return true
	}
	return u.PremiumExpiresAt.After(now)
}

// ReportsUsedOn returns the daily submission count as seen on the given
// day. A stale LastReportDate means the counter is effectively zero.
func (u *User) ReportsUsedOn(day time.Time) int {
	if u.LastReportDate == nil {
		return 0
	}
	y1, m1, d1 := u.LastReportDate.Date()
	y2, m2, d2 := day.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return 0
	}
	return u.DailyReportCount
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	err := passwordValidator.Validate(password)
	return err
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	UserID      uint   `json:"user_id"`
	Username    string `json:"username"`
	Reputation  int    `json:"reputation"`
	IsPremium   bool   `json:"is_premium"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileResponse is the reputation snapshot handed to the app.
type ProfileResponse struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Reputation       int        `json:"reputation"`
	LifetimeXP       int        `json:"lifetime_xp"`
	TotalReports     int        `json:"total_reports"`
	TotalHelps       int        `json:"total_helps"`
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at"`
	ReportsUsed      int        `json:"reports_used"`
	ReportsLimit     int        `json:"reports_limit"`
	VehicleType      string     `json:"vehicle_type"`
	PlateNumber      string     `json:"plate_number"`
	VehicleModel     string     `json:"vehicle_model"`
	AvatarData       string     `json:"avatar_data"`
}

type VehicleRequest struct {
	VehicleType  string `json:"vehicle_type" binding:"required,oneof=car motorbike bicycle"`
	PlateNumber  string `json:"plate_number"`
	VehicleModel string `json:"vehicle_model"`
}

type ProfileRequest struct {
	Username string `json:"username" binding:"required,min=2"`
}

type AvatarRequest struct {
	AvatarData string `json:"avatar_data" binding:"required"`
}

type RedeemPointsRequest struct {
	PointCost   int `json:"point_cost" binding:"required,gt=0"`
	ReportCount int `json:"report_count" binding:"required,gt=0"`
}
