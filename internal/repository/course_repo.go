package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golfclub/internal/domain"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) GetSession(ctx context.Context, id int64) (*domain.CourseSession, error) {
	var sess domain.CourseSession
	if err := r.db.WithContext(ctx).First(&sess, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (r *CourseRepository) ListUpcomingSessions(ctx context.Context, from time.Time) ([]domain.CourseSession, error) {
	var rows []domain.CourseSession
	err := r.db.WithContext(ctx).
		Where("start_date >= ?", from).
		Order("start_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Enroll inserts the enrollment booking and bumps the denormalized seat
// counter in one unit of work. The session row is locked FOR UPDATE, so the
// capacity check, the duplicate check and the counter increment are
// serialized against concurrent enrollments for the same session.
func (r *CourseRepository) Enroll(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sess domain.CourseSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sess, b.ResourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sess.Status != domain.ResourceActive {
			return ErrResourceUnavailable
		}
		if sess.EnrolledCount >= sess.Capacity {
			return ErrCourseFull
		}

		var dup int64
		if err := tx.Model(&domain.Booking{}).
			Where("booking_type = ? AND resource_id = ? AND user_id = ?", domain.BookingCourse, b.ResourceID, b.UserID).
			Where("status IN ?", activeStatuses).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadyEnrolled
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		return tx.Model(&domain.CourseSession{}).
			Where("id = ?", sess.ID).
			Update("enrolled_count", gorm.Expr("enrolled_count + 1")).Error
	})
}

// CancelEnrollment flips the enrollment to cancelled and releases the seat.
// Returns false without touching the counter when the booking already left
// the active set.
func (r *CourseRepository) CancelEnrollment(ctx context.Context, bookingID int64, reason string) (bool, error) {
	cancelled := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !b.Status.IsActive() {
			return nil
		}

		now := time.Now().UTC()
		if err := tx.Model(&domain.Booking{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{
				"status":        domain.BookingCancelled,
				"cancel_reason": reason,
				"cancelled_at":  &now,
				"updated_at":    now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.CourseSession{}).
			Where("id = ? AND enrolled_count > 0", b.ResourceID).
			Update("enrolled_count", gorm.Expr("enrolled_count - 1")).Error; err != nil {
			return err
		}
		cancelled = true
		return nil
	})
	return cancelled, err
}
