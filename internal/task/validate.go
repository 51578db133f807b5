package task

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"voice-scheduler-go/internal/logger"
)

// 12-hour wall clock: hour 1-12 (single optional leading zero), minute 00-59,
// optional whitespace before a case-insensitive meridiem.
var clockPattern = regexp.MustCompile(`(?i)^(1[0-2]|0?[1-9]):([0-5][0-9])\s?(AM|PM)$`)

// ValidateClock normalizes a free-text time into canonical "H:MM AM/PM" form.
// Anything that is empty, the sentinel, or unparseable degrades to the
// sentinel; this never fails the pipeline.
func ValidateClock(s string) string {
	log := logger.New().WithField("component", "task.validate")

	if s == "" {
		log.Info("no time provided, setting to N/A")
		return Sentinel
	}
	if strings.EqualFold(strings.TrimSpace(s), Sentinel) {
		return Sentinel
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		log.WithField("raw_time", s).Warn("invalid time format, setting to N/A")
		return Sentinel
	}
	hour, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%d:%s %s", hour, m[2], strings.ToUpper(m[3]))
}

// ParseStart parses an ISO-8601 start timestamp for calendar payloads. Unlike
// ValidateClock this propagates the error: an event cannot be created without
// a start time. A stamp without a zone is taken as UTC.
func ParseStart(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("start time %q is not ISO-8601: %w", s, err)
	}
	return t.UTC(), nil
}

// IsISO reports whether s parses as an ISO-8601 timestamp.
func IsISO(s string) bool {
	_, err := ParseStart(s)
	return err == nil
}
