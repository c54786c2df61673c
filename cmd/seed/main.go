package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"golfclub/internal/database"
	"golfclub/internal/domain"
	"golfclub/internal/pkg/jwt"
)

// Seeds a local database with demo resources, rates, coach schedules,
// course sessions and a coupon so the API can be exercised right away.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "golfclub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	venues := []domain.Resource{
		{Kind: domain.ResourceVenue, Name: "Championship Course", OpenMin: 6 * 60, CloseMin: 22 * 60, MinDuration: 60, MaxDuration: 300, SlotStep: 30, Status: domain.ResourceActive},
		{Kind: domain.ResourceVenue, Name: "Driving Range", OpenMin: 6 * 60, CloseMin: 23 * 60, MinDuration: 30, MaxDuration: 180, SlotStep: 30, Status: domain.ResourceActive},
		{Kind: domain.ResourceVenue, Name: "Night Simulator Bay", OpenMin: 22 * 60, CloseMin: 2 * 60, CrossMidnight: true, MinDuration: 60, MaxDuration: 240, SlotStep: 60, Status: domain.ResourceActive},
	}
	coaches := []domain.Resource{
		{Kind: domain.ResourceCoach, Name: "Coach Ayan", MinDuration: 60, MaxDuration: 120, SlotStep: 60, Status: domain.ResourceActive},
		{Kind: domain.ResourceCoach, Name: "Coach Dana", MinDuration: 60, MaxDuration: 180, SlotStep: 60, Status: domain.ResourceActive},
	}

	for i := range venues {
		if err := db.Create(&venues[i]).Error; err != nil {
			log.Fatal(err)
		}
	}
	for i := range coaches {
		if err := db.Create(&coaches[i]).Error; err != nil {
			log.Fatal(err)
		}
	}

	rates := []domain.ResourceRate{
		{ResourceID: venues[0].ID, BaseHourly: 80, PeakHourly: 120},
		{ResourceID: venues[1].ID, BaseHourly: 25, PeakHourly: 40},
		{ResourceID: venues[2].ID, BaseHourly: 50, PeakHourly: 70},
		{ResourceID: coaches[0].ID, BaseHourly: 60, PeakHourly: 90},
		{ResourceID: coaches[1].ID, BaseHourly: 75, PeakHourly: 100},
	}
	if err := db.Create(&rates).Error; err != nil {
		log.Fatal(err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var blocks []domain.CoachScheduleBlock
	for day := 1; day <= 14; day++ {
		date := today.AddDate(0, 0, day)
		for _, coach := range coaches {
			blocks = append(blocks, domain.CoachScheduleBlock{
				CoachID:  coach.ID,
				Date:     date,
				StartMin: 9 * 60,
				EndMin:   18 * 60,
			})
		}
	}
	if err := db.Create(&blocks).Error; err != nil {
		log.Fatal(err)
	}

	sessions := []domain.CourseSession{
		{
			Title:          "Beginner Swing Fundamentals",
			CoachID:        coaches[0].ID,
			StartDate:      today.AddDate(0, 0, 7),
			StartMin:       10 * 60,
			EndMin:         12 * 60,
			Capacity:       8,
			EnrollDeadline: today.AddDate(0, 0, 5),
			SeatPrice:      150,
			Status:         domain.ResourceActive,
		},
		{
			Title:          "Short Game Clinic",
			CoachID:        coaches[1].ID,
			StartDate:      today.AddDate(0, 0, 10),
			StartMin:       14 * 60,
			EndMin:         16 * 60,
			Capacity:       6,
			EnrollDeadline: today.AddDate(0, 0, 9),
			SeatPrice:      180,
			Status:         domain.ResourceActive,
		},
	}
	if err := db.Create(&sessions).Error; err != nil {
		log.Fatal(err)
	}

	coupon := domain.Coupon{
		Code:      "WELCOME10",
		Amount:    10,
		MaxClaims: 100,
		Status:    domain.CouponActive,
	}
	if err := db.Create(&coupon).Error; err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded %d venues, %d coaches, %d schedule blocks, %d sessions", len(venues), len(coaches), len(blocks), len(sessions))

	// With a secret configured, print ready-to-use demo tokens so the
	// protected routes can be hit straight from curl.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		signer := jwt.New(secret, 24*time.Hour)
		member, err := signer.GenerateToken(1, "member")
		if err != nil {
			log.Fatal(err)
		}
		admin, err := signer.GenerateToken(2, "admin")
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("demo member token (user 1): %s", member)
		log.Printf("demo admin token (user 2): %s", admin)
	}
}
