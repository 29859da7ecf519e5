package db

import (
	"time"

	"github.com/pkg/errors"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	UpdateUsername(userID uint, username string) error
	UpdateVehicle(userID uint, req *models.VehicleRequest) error
	UpdateAvatar(userID uint, avatarData string) error
	// RedeemPoints debits points and credits back daily submissions.
	RedeemPoints(userID uint, pointCost, reportCount int) (int, error)
	// RedeemPremium debits points and grants the time-boxed entitlement.
	RedeemPremium(userID uint, pointCost, days int, now time.Time) (int, error)
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (u *userRepo) UpdateUsername(userID uint, username string) error {
	var count int64
	if err := u.DB.Model(&models.User{}).
		Where("username = ? AND id != ?", username, userID).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "checking username")
	}
	if count > 0 {
		return errs.ErrUsernameTaken
	}
	return u.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("username", username).Error
}

func (u *userRepo) UpdateVehicle(userID uint, req *models.VehicleRequest) error {
	return u.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"vehicle_type":  req.VehicleType,
			"plate_number":  req.PlateNumber,
			"vehicle_model": req.VehicleModel,
		}).Error
}

func (u *userRepo) UpdateAvatar(userID uint, avatarData string) error {
	return u.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar_data", avatarData).Error
}

func (u *userRepo) RedeemPoints(userID uint, pointCost, reportCount int) (int, error) {
	balance := 0
	err := u.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return errors.Wrap(err, "locking user row")
		}
		if user.Reputation < pointCost {
			return errs.ErrInsufficientPoints
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"reputation":         gorm.Expr("reputation - ?", pointCost),
				"daily_report_count": gorm.Expr("daily_report_count - ?", reportCount),
			}).Error; err != nil {
			return errors.Wrap(err, "redeeming points")
		}
		balance = user.Reputation - pointCost
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (u *userRepo) RedeemPremium(userID uint, pointCost, days int, now time.Time) (int, error) {
	balance := 0
	err := u.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return errors.Wrap(err, "locking user row")
		}
		if user.PremiumActive(now) {
			return errs.ErrAlreadyPremium
		}
		if user.Reputation < pointCost {
			return errs.ErrInsufficientPoints
		}
		expires := now.AddDate(0, 0, days)
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"reputation":         gorm.Expr("reputation - ?", pointCost),
				"is_premium":         true,
				"premium_expires_at": expires,
			}).Error; err != nil {
			return errors.Wrap(err, "granting premium")
		}
		balance = user.Reputation - pointCost
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
