package engagement

import (
	"strings"
	"time"

	"clementus360/care-companion/types"
)

var listReminderPhrases = []string{
	"list all reminders",
	"show my reminders",
	"what are my reminders",
	"medicine schedule",
	"reminder list",
	"all medicine times",
}

// IsListRemindersRequest reports whether a reply is asking for the
// reminder list, by substring match against a fixed phrase set.
func IsListRemindersRequest(reply string) bool {
	if reply == "" {
		return false
	}
	lower := strings.ToLower(reply)
	for _, phrase := range listReminderPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// FormatReminderList renders the user's reminders for direct display.
func FormatReminderList(reminders []types.ReminderOccurrence) string {
	if len(reminders) == 0 {
		return "You have no medicine reminders set."
	}
	var b strings.Builder
	b.WriteString("Here are your medicine reminders:\n")
	for _, reminder := range reminders {
		name := reminder.MedicineName
		if name == "" {
			name = "Unknown"
		}
		b.WriteString("- " + name + " at " + displayTime(reminder.Time) +
			", Refill due: " + displayDate(reminder.SetRefillDate) + "\n")
	}
	return b.String()
}

func displayTime(value string) string {
	if value == "" {
		return "No time set"
	}
	if strings.Contains(value, "T") {
		hour, minute, err := parseClock(value)
		if err != nil {
			return "Invalid time format"
		}
		return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04")
	}
	return value
}

func displayDate(value string) string {
	if value == "" {
		return "No refill date set"
	}
	if strings.Contains(value, "T") {
		parsed, err := parseDate(value)
		if err != nil {
			return "Invalid refill date"
		}
		return parsed.Format("2006-01-02")
	}
	return value
}
