package engagement

import (
	"math"
	"sort"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/types"
)

// Summarize computes the trailing 7-day adherence picture from a user's
// reminder set and response log. Responses inside the window feed the
// rate; a same-day "yes" marks the reminder taken today. The "next dose"
// label is the string-smallest time value across reminders paired with
// its medicine name (plain string comparison, not calendar-aware).
// Read-only: nothing is mutated.
func Summarize(reminders map[string]types.ReminderOccurrence, responses map[string][]types.ResponseEntry, today time.Time) types.AdherenceSummary {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	allTakenToday := true
	missedDoses := 0
	totalLast7Days := 0
	takenCount := 0
	nextDoseTime := ""
	nextDoseLabel := ""

	ids := make([]string, 0, len(reminders))
	for id := range reminders {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		reminder := reminders[id]
		takenToday := false
		for _, entry := range responses[id] {
			if entry.Timestamp == "" || entry.Response == "" {
				continue
			}
			entryDate, err := parseDate(entry.Timestamp)
			if err != nil {
				config.Logger.Warnf("Invalid response timestamp %s: %v", entry.Timestamp, err)
				continue
			}
			diffDays := int(day.Sub(entryDate).Hours() / 24)
			if diffDays >= 0 && diffDays < 7 {
				totalLast7Days++
				if entry.Response == "yes" {
					takenCount++
				}
			}
			if entryDate.Equal(day) && entry.Response == "yes" {
				takenToday = true
			}
		}
		if !takenToday {
			allTakenToday = false
			missedDoses++
		}
		if nextDoseTime == "" || reminder.Time < nextDoseTime {
			nextDoseTime = reminder.Time
			name := reminder.MedicineName
			if name == "" {
				name = "Unknown"
			}
			nextDoseLabel = reminder.Time + " - " + name
		}
	}

	rate := 0.0
	if totalLast7Days > 0 {
		rate = math.Round(float64(takenCount)/float64(totalLast7Days)*100*100) / 100
	}
	if nextDoseLabel == "" {
		nextDoseLabel = "No upcoming dose"
	}
	return types.AdherenceSummary{
		AllTakenToday: allTakenToday,
		MissedDoses:   missedDoses,
		AdherenceRate: rate,
		NextDose:      nextDoseLabel,
	}
}
