package engagement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/types"

	"github.com/google/uuid"
)

// ErrMissingStartDate is returned when a spec has neither start_from_today
// nor an explicit reminder_date.
var ErrMissingStartDate = errors.New("reminder has no start date")

var weekdayIndex = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// Expand turns a reminder spec into its dated occurrences. A one-shot spec
// yields exactly its start date; a recurring spec yields every matching
// weekday from start to end inclusive, all sharing one freshly generated
// recurring group id. Unrecognized weekday tags degrade to the start date
// alone rather than an empty schedule. The function performs no I/O; the
// caller persists one record per occurrence.
func Expand(spec types.ReminderSpec, today time.Time) ([]types.ReminderOccurrence, error) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case spec.StartFromToday:
		// keep today
	case spec.ReminderDate != "":
		parsed, err := parseDate(spec.ReminderDate)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder_date for %s: %w", spec.MedicineName, err)
		}
		start = parsed
	default:
		return nil, ErrMissingStartDate
	}

	end := start.AddDate(0, 0, config.EngagementConfig.DefaultScheduleDays)
	if spec.EndDate != "" {
		parsed, err := parseDate(spec.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date for %s: %w", spec.MedicineName, err)
		}
		end = parsed
	}

	dates := occurrenceDates(spec, start, end)

	groupID := ""
	if len(spec.Recurring) > 0 {
		groupID = uuid.NewString()
	}

	occurrences := make([]types.ReminderOccurrence, 0, len(dates))
	for _, date := range dates {
		occurrences = append(occurrences, types.ReminderOccurrence{
			ReminderID:       uuid.NewString(),
			RecurringGroupID: groupID,
			Date:             date.Format("2006-01-02"),
			MedicineName:     spec.MedicineName,
			Time:             spec.Time,
			Dosage:           spec.Dosage,
			SetRefillDate:    spec.SetRefillDate,
		})
	}
	return occurrences, nil
}

func occurrenceDates(spec types.ReminderSpec, start, end time.Time) []time.Time {
	if len(spec.Recurring) == 0 {
		return []time.Time{start}
	}
	wanted := map[time.Weekday]bool{}
	for _, tag := range spec.Recurring {
		key := strings.ToLower(tag)
		if len(key) > 3 {
			key = key[:3]
		}
		if day, ok := weekdayIndex[key]; ok {
			wanted[day] = true
		}
	}
	if len(wanted) == 0 {
		config.Logger.Warnf("Invalid weekdays for reminder %s: %v, using start date %s",
			spec.MedicineName, spec.Recurring, start.Format("2006-01-02"))
		return []time.Time{start}
	}
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wanted[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return []time.Time{start}
	}
	return dates
}
