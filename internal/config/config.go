package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golfclub/internal/domain"
)

const (
	defaultAddr             = ":8080"
	defaultJWTTTL           = "24h"
	defaultMaxActive        = "5"
	defaultFreeCancelVenue  = "24h"
	defaultFreeCancelCoach  = "12h"
	defaultFreeCancelCourse = "48h"
	defaultPeakStart        = "17:00"
	defaultPeakEnd          = "21:00"
	defaultPeakWeekends     = "true"
)

// Policy carries the business-rule knobs the reservation engine consults:
// free-cancellation lead times per resource class and the per-user ceiling
// on active bookings. Kept configurable rather than hard-coded so the rules
// can vary per deployment without code changes.
type Policy struct {
	MaxActiveBookings int
	FreeCancelVenue   time.Duration
	FreeCancelCoach   time.Duration
	FreeCancelCourse  time.Duration
	PeakStart         string
	PeakEnd           string
	PeakWeekends      bool
}

// FreeCancelFor returns the free-cancellation lead time for a booking type.
func (p Policy) FreeCancelFor(t domain.BookingType) time.Duration {
	switch t {
	case domain.BookingCoach:
		return p.FreeCancelCoach
	case domain.BookingCourse:
		return p.FreeCancelCourse
	default:
		return p.FreeCancelVenue
	}
}

type Config struct {
	Addr        string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration
	Policy      Policy
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:        getEnv("HTTP_ADDR", defaultAddr),
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.Policy.MaxActiveBookings, err = parseIntEnv("MAX_ACTIVE_BOOKINGS", defaultMaxActive); err != nil {
		return nil, err
	}
	if cfg.Policy.FreeCancelVenue, err = parseDurationEnv("FREE_CANCEL_VENUE", defaultFreeCancelVenue); err != nil {
		return nil, err
	}
	if cfg.Policy.FreeCancelCoach, err = parseDurationEnv("FREE_CANCEL_COACH", defaultFreeCancelCoach); err != nil {
		return nil, err
	}
	if cfg.Policy.FreeCancelCourse, err = parseDurationEnv("FREE_CANCEL_COURSE", defaultFreeCancelCourse); err != nil {
		return nil, err
	}
	cfg.Policy.PeakStart = getEnv("PEAK_START", defaultPeakStart)
	cfg.Policy.PeakEnd = getEnv("PEAK_END", defaultPeakEnd)
	cfg.Policy.PeakWeekends = parseBoolEnv("PEAK_WEEKENDS", defaultPeakWeekends)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Policy.MaxActiveBookings < 0 {
		return fmt.Errorf("MAX_ACTIVE_BOOKINGS must be >= 0")
	}
	for name, d := range map[string]time.Duration{
		"FREE_CANCEL_VENUE":  cfg.Policy.FreeCancelVenue,
		"FREE_CANCEL_COACH":  cfg.Policy.FreeCancelCoach,
		"FREE_CANCEL_COURSE": cfg.Policy.FreeCancelCourse,
	} {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}
	return nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
