package domain

import "time"

type CouponStatus string

const (
	CouponActive   CouponStatus = "active"
	CouponDisabled CouponStatus = "disabled"
)

// Coupon is a fixed-amount discount with a claim budget. claimed_count is
// moved under the coupon row lock so the budget cannot be oversubscribed.
type Coupon struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Amount       float64      `gorm:"not null" json:"amount"`
	MaxClaims    int          `gorm:"default:0" json:"max_claims"`
	ClaimedCount int          `gorm:"default:0" json:"claimed_count"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	Status       CouponStatus `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Coupon) TableName() string { return "coupons" }

// LoyaltyAccount is the per-user points balance. All balance moves go
// through a transaction that locks this row.
type LoyaltyAccount struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	Points    int64     `gorm:"default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LoyaltyAccount) TableName() string { return "loyalty_accounts" }

// PointsEntry is the append-only ledger behind the balance.
type PointsEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	AccountID int64     `gorm:"index;not null" json:"account_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Kind      string    `gorm:"size:32;not null" json:"kind"`
	HoldID    *int64    `gorm:"index" json:"hold_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (PointsEntry) TableName() string { return "points_entries" }

type HoldStatus string

const (
	HoldHeld      HoldStatus = "held"
	HoldCommitted HoldStatus = "committed"
	HoldReleased  HoldStatus = "released"
	HoldReversed  HoldStatus = "reversed"
)

// DiscountHoldRecord pins a coupon claim and/or points deduction to a
// booking attempt. held -> committed once the booking row exists,
// held -> released if the reservation fails, committed -> reversed on
// cancellation.
type DiscountHoldRecord struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	CouponID  *int64     `gorm:"index" json:"coupon_id,omitempty"`
	Points    int64      `gorm:"default:0" json:"points"`
	Amount    float64    `gorm:"not null" json:"amount"`
	BookingID *int64     `gorm:"index" json:"booking_id,omitempty"`
	Status    HoldStatus `gorm:"size:16;default:'held'" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (DiscountHoldRecord) TableName() string { return "discount_holds" }
