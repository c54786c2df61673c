package domain

import "time"

type ResourceKind string

const (
	ResourceVenue ResourceKind = "venue"
	ResourceCoach ResourceKind = "coach"
)

type ResourceStatus string

const (
	ResourceActive      ResourceStatus = "active"
	ResourceMaintenance ResourceStatus = "maintenance"
	ResourceDisabled    ResourceStatus = "disabled"
)

// Resource is a bookable venue or coach. Business-hour boundaries are kept
// as minutes since midnight; CrossMidnight marks operating windows that wrap
// past 00:00 (e.g. 22:00-02:00).
type Resource struct {
	ID            int64          `json:"id" gorm:"column:id;primaryKey"`
	Kind          ResourceKind   `json:"kind" gorm:"column:kind"`
	Name          string         `json:"name" gorm:"column:name"`
	OpenMin       int            `json:"-" gorm:"column:open_min"`
	CloseMin      int            `json:"-" gorm:"column:close_min"`
	CrossMidnight bool           `json:"cross_midnight" gorm:"column:cross_midnight"`
	MinDuration   int            `json:"min_duration_min" gorm:"column:min_duration_min"`
	MaxDuration   int            `json:"max_duration_min" gorm:"column:max_duration_min"`
	SlotStep      int            `json:"slot_step_min" gorm:"column:slot_step_min"`
	Status        ResourceStatus `json:"status" gorm:"column:status"`
	CreatedAt     time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (Resource) TableName() string { return "resources" }

// ResourceRate carries the base and peak hourly rates the pricing
// collaborator resolves quotes from.
type ResourceRate struct {
	ID         int64   `json:"id" gorm:"column:id;primaryKey"`
	ResourceID int64   `json:"resource_id" gorm:"column:resource_id;uniqueIndex"`
	BaseHourly float64 `json:"base_hourly" gorm:"column:base_hourly"`
	PeakHourly float64 `json:"peak_hourly" gorm:"column:peak_hourly"`
}

func (ResourceRate) TableName() string { return "resource_rates" }

// AvailabilityBlock is the read-only projection of a resource's bookable
// window for one date. For venues it mirrors the static business hours; for
// coaches it comes from the schedule row for that date. Booked marks a coach
// day that is already taken as a whole.
type AvailabilityBlock struct {
	Date          time.Time
	OpenMin       int
	CloseMin      int
	CrossMidnight bool
	Booked        bool
}
