package engagement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"clementus360/care-companion/config"
)

// Reminder times are stored either as a bare "HH:MM" or as a full ISO-8601
// timestamp. Only the clock value matters for the window checks; a
// timestamp's zone is ignored.
func parseClock(value string) (hour, minute int, err error) {
	if value == "" {
		return 0, 0, fmt.Errorf("empty time value")
	}
	if strings.Contains(value, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, perr := time.Parse(layout, value); perr == nil {
				return t.Hour(), t.Minute(), nil
			}
		}
		return 0, 0, fmt.Errorf("unparseable timestamp %q", value)
	}
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unparseable time %q", value)
	}
	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable hour in %q", value)
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable minute in %q", value)
	}
	return hour, minute, nil
}

// WithinMinutes reports whether the reminder's clock time is within
// threshold minutes of now, on a 0-1439 minute-of-day scale. There is no
// day-wrap handling: a reminder at 23:50 checked at 00:05 is not close.
func WithinMinutes(reminderTime string, now time.Time, threshold int) bool {
	hour, minute, err := parseClock(reminderTime)
	if err != nil {
		config.Logger.Warnf("Error parsing reminder time %s: %v", reminderTime, err)
		return false
	}
	reminderMinutes := hour*60 + minute
	nowMinutes := now.Hour()*60 + now.Minute()
	diff := reminderMinutes - nowMinutes
	if diff < 0 {
		diff = -diff
	}
	return diff <= threshold
}

// IsAfter reports whether now is strictly past the reminder's clock time.
func IsAfter(reminderTime string, now time.Time) bool {
	hour, minute, err := parseClock(reminderTime)
	if err != nil {
		config.Logger.Warnf("Error parsing reminder time %s: %v", reminderTime, err)
		return false
	}
	return now.Hour()*60+now.Minute() > hour*60+minute
}

// RefillNear reports whether the refill date is today or at most
// thresholdDays ahead.
func RefillNear(refillDate string, now time.Time, thresholdDays int) bool {
	if refillDate == "" {
		return false
	}
	refill, err := parseDate(refillDate)
	if err != nil {
		config.Logger.Warnf("Error parsing refill date %s: %v", refillDate, err)
		return false
	}
	current := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	delta := int(refill.Sub(current).Hours() / 24)
	return delta >= 0 && delta <= thresholdDays
}

// InPeriod reports whether the reminder's hour falls in [startHour, endHour).
func InPeriod(reminderTime string, startHour, endHour int) bool {
	hour, _, err := parseClock(reminderTime)
	if err != nil {
		config.Logger.Warnf("Error parsing reminder time %s: %v", reminderTime, err)
		return false
	}
	return startHour <= hour && hour < endHour
}

// parseDate extracts the calendar date from an ISO date or timestamp,
// normalized to midnight UTC so day arithmetic is exact.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
