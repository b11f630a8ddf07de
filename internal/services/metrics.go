package services

import (
	"errors"

	"github.com/cube5963/feedo-cfes/internal/fault"
	"github.com/cube5963/feedo-cfes/internal/models"

	"gorm.io/gorm"
)

type MetricsService struct {
	db *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

func (s *MetricsService) Increment(name string) error {
	if name != models.MetricAccess && name != models.MetricAnswer {
		return fault.Validation("unknown metric: " + name)
	}

	result := s.db.Model(&models.Metric{}).
		Where("name = ?", name).
		UpdateColumn("num", gorm.Expr("num + ?", 1))
	if result.Error != nil {
		return fault.NewInternalError("increment metric", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := s.db.Create(&models.Metric{Name: name, Num: 1}).Error; err != nil {
			return fault.NewInternalError("create metric", err)
		}
	}
	return nil
}

func (s *MetricsService) Get(name string) (int64, error) {
	var metric models.Metric
	err := s.db.Where("name = ?", name).First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fault.NotFound("metric not found")
		}
		return 0, fault.NewInternalError("load metric", err)
	}
	return metric.Num, nil
}
