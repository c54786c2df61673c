package domain

import "time"

// CoachScheduleBlock is one date-scoped window a coach opened for booking.
// Rows are created by schedule management and read-only for the engine.
type CoachScheduleBlock struct {
	ID       int64     `json:"id" gorm:"column:id;primaryKey"`
	CoachID  int64     `json:"coach_id" gorm:"column:coach_id;index:idx_coach_date"`
	Date     time.Time `json:"date" gorm:"column:date;index:idx_coach_date"`
	StartMin int       `json:"-" gorm:"column:start_min"`
	EndMin   int       `json:"-" gorm:"column:end_min"`
	IsBooked bool      `json:"is_booked" gorm:"column:is_booked"`
}

func (CoachScheduleBlock) TableName() string { return "coach_schedule_blocks" }

// CourseSession is a group course occurrence with seat capacity instead of
// exclusive time ownership. EnrolledCount is denormalized and only mutated
// inside the enrollment transaction.
type CourseSession struct {
	ID             int64          `json:"id" gorm:"column:id;primaryKey"`
	Title          string         `json:"title" gorm:"column:title"`
	CoachID        int64          `json:"coach_id" gorm:"column:coach_id"`
	StartDate      time.Time      `json:"start_date" gorm:"column:start_date"`
	StartMin       int            `json:"-" gorm:"column:start_min"`
	EndMin         int            `json:"-" gorm:"column:end_min"`
	Capacity       int            `json:"capacity" gorm:"column:capacity"`
	EnrolledCount  int            `json:"enrolled_count" gorm:"column:enrolled_count"`
	EnrollDeadline time.Time      `json:"enroll_deadline" gorm:"column:enroll_deadline"`
	SeatPrice      float64        `json:"seat_price" gorm:"column:seat_price"`
	Status         ResourceStatus `json:"status" gorm:"column:status"`
	CreatedAt      time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"column:updated_at"`
}

func (CourseSession) TableName() string { return "course_sessions" }
