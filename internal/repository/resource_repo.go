package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"golfclub/internal/domain"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) ListByKind(ctx context.Context, kind domain.ResourceKind) ([]domain.Resource, error) {
	var rows []domain.Resource
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetScheduleBlock returns the coach's schedule row for one date, or
// ErrNotFound when the coach did not open that day.
func (r *ResourceRepository) GetScheduleBlock(ctx context.Context, coachID int64, date time.Time) (*domain.CoachScheduleBlock, error) {
	var block domain.CoachScheduleBlock
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND date = ?", coachID, date).
		First(&block).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}
