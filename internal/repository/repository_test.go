package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"golfclub/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Resource{},
		&domain.ResourceRate{},
		&domain.CoachScheduleBlock{},
		&domain.CourseSession{},
		&domain.Booking{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return db
}

func createVenue(t *testing.T, db *gorm.DB, status domain.ResourceStatus) *domain.Resource {
	t.Helper()
	res := &domain.Resource{
		Kind:        domain.ResourceVenue,
		Name:        "Test Venue",
		OpenMin:     6 * 60,
		CloseMin:    22 * 60,
		MinDuration: 60,
		MaxDuration: 300,
		SlotStep:    30,
		Status:      status,
	}
	if err := db.Create(res).Error; err != nil {
		t.Fatalf("failed to create resource: %v", err)
	}
	return res
}

func testDate() time.Time {
	return time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
}

func newBooking(resourceID, userID int64, startMin, endMin int) *domain.Booking {
	return &domain.Booking{
		Type:        domain.BookingVenue,
		ResourceID:  resourceID,
		UserID:      userID,
		BookingDate: testDate(),
		StartMin:    startMin,
		EndMin:      endMin,
		Status:      domain.BookingPending,
		FinalPrice:  100,
		PlayerCount: 1,
	}
}
