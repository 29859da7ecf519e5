package services

import (
	"github.com/google/uuid"
	"github.com/vialtech/rutalerta/config"
	"github.com/vialtech/rutalerta/db"
	"github.com/vialtech/rutalerta/models"
)

type FixedPointService interface {
	GetAllFixedPoints() ([]models.FixedPoint, error)
	CreateFixedPoint(req *models.FixedPointRequest) (*models.FixedPoint, error)
}

type fixedPointService struct {
	Config         *config.Config
	fixedPointRepo db.FixedPointRepository
}

// NewFixedPointService instantiates a FixedPointService
func NewFixedPointService(fixedPointRepo db.FixedPointRepository, conf *config.Config) FixedPointService {
	return &fixedPointService{
		Config:         conf,
		fixedPointRepo: fixedPointRepo,
	}
}

func (s *fixedPointService) GetAllFixedPoints() ([]models.FixedPoint, error) {
	points, err := s.fixedPointRepo.GetAllFixedPoints()
	if err != nil {
		return nil, asEngineError(err)
	}
	return points, nil
}

func (s *fixedPointService) CreateFixedPoint(req *models.FixedPointRequest) (*models.FixedPoint, error) {
	point := &models.FixedPoint{
		ID:        uuid.New(),
		Name:      req.Name,
		Type:      req.Type,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Address:   req.Address,
		Phone:     req.Phone,
		Hours:     req.Hours,
	}
	if err := s.fixedPointRepo.CreateFixedPoint(point); err != nil {
		return nil, asEngineError(err)
	}
	return point, nil
}
