package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"golfclub/internal/domain"
)

type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

func (r *RateRepository) GetByResourceID(ctx context.Context, resourceID int64) (*domain.ResourceRate, error) {
	var rate domain.ResourceRate
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}
