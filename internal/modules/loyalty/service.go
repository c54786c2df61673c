package loyalty

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golfclub/internal/domain"
	"golfclub/internal/repository"
)

// pointValue converts redeemed points to a discount amount: 100 points = 1.00.
const pointValue = 0.01

// Service manages coupon claims and points redemptions as two-phase holds.
// A hold is taken before the booking price is fixed, committed once the
// booking row exists, released if the reservation fails, and reversed when
// the booking is later cancelled. All balance and claim-budget moves lock
// the owning row first.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// ReserveDiscount claims the coupon and/or deducts the points inside one
// transaction and records a hold carrying the combined discount amount.
func (s *Service) ReserveDiscount(ctx context.Context, userID int64, couponID *int64, points int64) (*domain.DiscountHold, error) {
	var hold domain.DiscountHoldRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var amount float64

		if couponID != nil {
			var coupon domain.Coupon
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&coupon, *couponID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCouponNotFound
				}
				return err
			}
			if coupon.Status != domain.CouponActive {
				return ErrCouponNotFound
			}
			if coupon.ExpiresAt != nil && s.now().After(*coupon.ExpiresAt) {
				return ErrCouponExpired
			}
			if coupon.MaxClaims > 0 && coupon.ClaimedCount >= coupon.MaxClaims {
				return ErrCouponExhausted
			}
			if err := tx.Model(&coupon).
				Update("claimed_count", gorm.Expr("claimed_count + 1")).Error; err != nil {
				return err
			}
			amount += coupon.Amount
		}

		if points > 0 {
			acc, err := s.lockAccount(tx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInsufficientPoints
			}
			if err != nil {
				return err
			}
			if acc.Points < points {
				return ErrInsufficientPoints
			}
			if err := s.move(tx, acc, -points, "redeem_hold", nil); err != nil {
				return err
			}
			amount += float64(points) * pointValue
		}

		hold = domain.DiscountHoldRecord{
			UserID:   userID,
			CouponID: couponID,
			Points:   points,
			Amount:   amount,
			Status:   domain.HoldHeld,
		}
		return tx.Create(&hold).Error
	})
	if err != nil {
		return nil, err
	}
	return &domain.DiscountHold{ID: hold.ID, Amount: hold.Amount}, nil
}

// CommitHold binds a held discount to its booking. Conditional on the hold
// still being held, so a racing release cannot be overwritten.
func (s *Service) CommitHold(ctx context.Context, holdID, bookingID int64) error {
	return s.db.WithContext(ctx).
		Model(&domain.DiscountHoldRecord{}).
		Where("id = ? AND status = ?", holdID, domain.HoldHeld).
		Updates(map[string]any{
			"status":     domain.HoldCommitted,
			"booking_id": bookingID,
		}).Error
}

// ReleaseHold undoes a hold whose reservation never materialized. A hold
// that already left the held state is ignored.
func (s *Service) ReleaseHold(ctx context.Context, holdID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hold domain.DiscountHoldRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&hold, holdID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if hold.Status != domain.HoldHeld {
			return nil
		}
		return s.undo(tx, &hold, domain.HoldReleased, "redeem_release")
	})
}

// OnCancelled reverses the committed discount of a cancelled booking:
// points return to the balance and the coupon claim is handed back.
func (s *Service) OnCancelled(ctx context.Context, bookingID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var hold domain.DiscountHoldRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ? AND status = ?", bookingID, domain.HoldCommitted).
			First(&hold).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return s.undo(tx, &hold, domain.HoldReversed, "redeem_reverse")
	})
}

// Balance reports the user's points. Users without an account read as zero.
func (s *Service) Balance(ctx context.Context, userID int64) (int64, error) {
	var acc domain.LoyaltyAccount
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acc.Points, nil
}

// Award credits points, creating the account on first touch.
func (s *Service) Award(ctx context.Context, userID, points int64, kind string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acc, err := s.lockAccount(tx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			acc = &domain.LoyaltyAccount{UserID: userID}
			if err := tx.Create(acc).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		return s.move(tx, acc, points, kind, nil)
	})
}

func (s *Service) undo(tx *gorm.DB, hold *domain.DiscountHoldRecord, to domain.HoldStatus, entryKind string) error {
	if hold.Points > 0 {
		acc, err := s.lockAccount(tx, hold.UserID)
		if err != nil {
			return err
		}
		if err := s.move(tx, acc, hold.Points, entryKind, &hold.ID); err != nil {
			return err
		}
	}
	if hold.CouponID != nil {
		err := tx.Model(&domain.Coupon{}).
			Where("id = ? AND claimed_count > 0", *hold.CouponID).
			Update("claimed_count", gorm.Expr("claimed_count - 1")).Error
		if err != nil {
			return err
		}
	}
	return tx.Model(hold).Update("status", to).Error
}

func (s *Service) lockAccount(tx *gorm.DB, userID int64) (*domain.LoyaltyAccount, error) {
	var acc domain.LoyaltyAccount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (s *Service) move(tx *gorm.DB, acc *domain.LoyaltyAccount, delta int64, kind string, holdID *int64) error {
	if err := tx.Model(acc).
		Update("points", gorm.Expr("points + ?", delta)).Error; err != nil {
		return err
	}
	entry := domain.PointsEntry{
		AccountID: acc.ID,
		Delta:     delta,
		Kind:      kind,
		HoldID:    holdID,
	}
	return tx.Create(&entry).Error
}
