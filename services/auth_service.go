package services

import (
	"strings"

	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	errs "github.com/vialtech/rutalerta/errors"
	"github.com/vialtech/rutalerta/models"
	"github.com/vialtech/rutalerta/services/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.User) (*models.User, error)
	LoginUser(request *models.LoginRequest) (*models.LoginResponse, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiates an AuthService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(user *models.User) (*models.User, error) {
	if err := models.ValidateWhiteSpaces(user); err != nil {
		return nil, errs.New(err.Error(), 400)
	}
	user.Email = strings.ToLower(user.Email)

	if err := s.authRepo.IsEmailExist(user.Email); err != nil {
		return nil, err
	}
	if err := s.authRepo.IsUsernameExist(user.Username); err != nil {
		return nil, err
	}
	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, errs.New(err.Error(), 400)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	created, err := s.authRepo.CreateUser(user)
	if err != nil {
		return nil, asEngineError(err)
	}
	return created, nil
}

func (s *authService) LoginUser(request *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.authRepo.FindUserByEmail(strings.ToLower(request.Email))
	if err != nil {
		if errs.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, asEngineError(err)
	}

	if err := user.VerifyPassword(request.Password); err != nil {
		return nil, errs.ErrUnauthorized
	}

	token, err := jwt.GenerateToken(user.ID, s.Config.JWTSecret)
	if err != nil {
		return nil, errs.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Reputation:  user.Reputation,
		IsPremium:   user.IsPremium,
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}
