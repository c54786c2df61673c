package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golfclub/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var activeStatuses = []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}

// Reserve runs the whole check-then-insert as one unit of work. The resource
// row is locked FOR UPDATE first, which serializes concurrent reservations
// per resource and lets us re-validate the status an admin may have flipped
// after the caller's pre-checks. Overlap and quota are re-counted under the
// lock, then the booking is inserted. A unique-constraint violation from a
// concurrent commit maps to ErrSlotTaken.
//
// Course enrollments are excluded from the overlap count: their resource_id
// points into course_sessions, a separate id space from resources, so a
// session row must never shadow the venue or coach carrying the same id.
func (r *BookingRepository) Reserve(ctx context.Context, b *domain.Booking, maxActivePerUser int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res domain.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&res, b.ResourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if res.Status != domain.ResourceActive {
			return ErrResourceUnavailable
		}

		var overlapping int64
		if err := tx.Model(&domain.Booking{}).
			Where("resource_id = ? AND booking_date = ?", b.ResourceID, b.BookingDate).
			Where("booking_type <> ?", domain.BookingCourse).
			Where("status IN ?", activeStatuses).
			Where("start_min < ? AND end_min > ?", b.EndMin, b.StartMin).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrSlotTaken
		}

		if maxActivePerUser > 0 {
			var active int64
			if err := tx.Model(&domain.Booking{}).
				Where("user_id = ? AND status IN ?", b.UserID, activeStatuses).
				Count(&active).Error; err != nil {
				return err
			}
			if active >= int64(maxActivePerUser) {
				return ErrUserQuotaExceeded
			}
		}

		return tx.Create(b).Error
	})
	if err != nil && isUniqueConstraintError(err) {
		return ErrSlotTaken
	}
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ActiveForResourceDate returns pending/confirmed venue and coach bookings
// for one resource and date, ordered by start time. Used by the availability
// projection. Course enrollments live in the course_sessions id space and
// are filtered out here for the same reason as in Reserve.
func (r *BookingRepository) ActiveForResourceDate(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND booking_date = ?", resourceID, date).
		Where("booking_type <> ?", domain.BookingCourse).
		Where("status IN ?", activeStatuses).
		Order("start_min").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusIf applies from->to only when the row still carries the from
// status, so two racing transitions cannot both win.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// CancelIfActive flips an active booking to cancelled, recording the reason.
// Returns false when the booking already left the active set, which keeps a
// second cancel free of side effects.
func (r *BookingRepository) CancelIfActive(ctx context.Context, id int64, reason string) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, activeStatuses).
		Updates(map[string]any{
			"status":        domain.BookingCancelled,
			"cancel_reason": reason,
			"cancelled_at":  &now,
			"updated_at":    now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingRepository) CountActiveByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("user_id = ? AND status IN ?", userID, activeStatuses).
		Count(&n).Error
	return n, err
}

func isUniqueConstraintError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
