package db

import (
	"github.com/pkg/errors"
	"github.com/vialtech/rutalerta/models"
	"gorm.io/gorm"
)

type FixedPointRepository interface {
	GetAllFixedPoints() ([]models.FixedPoint, error)
	CreateFixedPoint(point *models.FixedPoint) error
	BulkInsert(points []models.FixedPoint) error
	// GetLocations returns just the coordinates of every stored point, for
	// the importer's minimum-separation filter.
	GetLocations() ([][2]float64, error)
	Truncate() error
}

type fixedPointRepo struct {
	DB *gorm.DB
}

func NewFixedPointRepo(db *GormDB) FixedPointRepository {
	return &fixedPointRepo{db.DB}
}

func (f *fixedPointRepo) GetAllFixedPoints() ([]models.FixedPoint, error) {
	var points []models.FixedPoint
	if err := f.DB.Find(&points).Error; err != nil {
		return nil, errors.Wrap(err, "listing fixed points")
	}
	return points, nil
}

func (f *fixedPointRepo) CreateFixedPoint(point *models.FixedPoint) error {
	if err := f.DB.Create(point).Error; err != nil {
		return errors.Wrap(err, "creating fixed point")
	}
	return nil
}

func (f *fixedPointRepo) BulkInsert(points []models.FixedPoint) error {
	if len(points) == 0 {
		return nil
	}
	if err := f.DB.CreateInBatches(points, 100).Error; err != nil {
		return errors.Wrap(err, "bulk inserting fixed points")
	}
	return nil
}

func (f *fixedPointRepo) GetLocations() ([][2]float64, error) {
	var rows []struct {
		Latitude  float64
		Longitude float64
	}
	if err := f.DB.Model(&models.FixedPoint{}).
		Select("latitude, longitude").Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "loading fixed point locations")
	}
	locations := make([][2]float64, 0, len(rows))
	for _, r := range rows {
		locations = append(locations, [2]float64{r.Latitude, r.Longitude})
	}
	return locations, nil
}

func (f *fixedPointRepo) Truncate() error {
	if err := f.DB.Exec("TRUNCATE TABLE fixed_points").Error; err != nil {
		return errors.Wrap(err, "truncating fixed points")
	}
	return nil
}
