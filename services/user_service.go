package services

import (
	"time"

	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/models"
)

type UserService interface {
	GetProfile(userID uint) (*models.ProfileResponse, error)
	UpdateUsername(userID uint, req *models.ProfileRequest) error
	UpdateVehicle(userID uint, req *models.VehicleRequest) error
	UpdateAvatar(userID uint, req *models.AvatarRequest) error
	RedeemPoints(userID uint, req *models.RedeemPointsRequest) (int, error)
	RedeemPremium(userID uint) (int, error)
}

type userService struct {
	Config   *config.Config
	userRepo db.UserRepository
	authRepo db.AuthRepository
}

// NewUserService instantiates a UserService
func NewUserService(userRepo db.UserRepository, authRepo db.AuthRepository, conf *config.Config) UserService {
	return &userService{
		Config:   conf,
		userRepo: userRepo,
		authRepo: authRepo,
	}
}

func (s *userService) GetProfile(userID uint) (*models.ProfileResponse, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, asEngineError(err)
	}

	now := time.Now()
	return &models.ProfileResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Reputation:       user.Reputation,
		LifetimeXP:       user.LifetimeXP,
		TotalReports:     user.TotalReports,
		TotalHelps:       user.TotalHelps,
		IsPremium:        user.PremiumActive(now),
		PremiumExpiresAt: user.PremiumExpiresAt,
		ReportsUsed:      user.ReportsUsedOn(now),
		ReportsLimit:     s.Config.FreeDailyReportLimit,
		VehicleType:      user.VehicleType,
		PlateNumber:      user.PlateNumber,
		VehicleModel:     user.VehicleModel,
		AvatarData:       user.AvatarData,
	}, nil
}

func (s *userService) UpdateUsername(userID uint, req *models.ProfileRequest) error {
	return asEngineError(s.userRepo.UpdateUsername(userID, req.Username))
}

func (s *userService) UpdateVehicle(userID uint, req *models.VehicleRequest) error {
	return asEngineError(s.userRepo.UpdateVehicle(userID, req))
}

func (s *userService) UpdateAvatar(userID uint, req *models.AvatarRequest) error {
	return asEngineError(s.userRepo.UpdateAvatar(userID, req.AvatarData))
}

func (s *userService) RedeemPoints(userID uint, req *models.RedeemPointsRequest) (int, error) {
	balance, err := s.userRepo.RedeemPoints(userID, req.PointCost, req.ReportCount)
	if err != nil {
		return 0, asEngineError(err)
	}
	return balance, nil
}

func (s *userService) RedeemPremium(userID uint) (int, error) {
	balance, err := s.userRepo.RedeemPremium(userID,
		s.Config.PremiumPointCost, s.Config.PremiumDays, time.Now())
	if err != nil {
		return 0, asEngineError(err)
	}
	return balance, nil
}
