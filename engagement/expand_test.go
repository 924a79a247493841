package engagement

import (
	"errors"
	"testing"
	"time"

	"clementus360/care-companion/types"
)

func expandDates(t *testing.T, occurrences []types.ReminderOccurrence) []string {
	t.Helper()
	dates := make([]string, len(occurrences))
	for i, o := range occurrences {
		dates[i] = o.Date
	}
	return dates
}

func TestExpand_RecurringWeekdays(t *testing.T) {
	// 2025-08-10 is a Sunday; the window runs 13 days to Saturday the 23rd.
	spec := types.ReminderSpec{
		MedicineName: "Aspirin",
		Time:         "08:00",
		Recurring:    []string{"Mon", "WEDNESDAY"},
		ReminderDate: "2025-08-10",
		EndDate:      "2025-08-23",
	}
	occurrences, err := Expand(spec, time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-08-11", "2025-08-13", "2025-08-18", "2025-08-20"}
	got := expandDates(t, occurrences)
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d: got %s, want %s", i, got[i], want[i])
		}
	}

	group := occurrences[0].RecurringGroupID
	if group == "" {
		t.Fatal("recurring spec should carry a group id")
	}
	seen := map[string]bool{}
	for _, o := range occurrences {
		if o.RecurringGroupID != group {
			t.Errorf("occurrence %s has group %s, want %s", o.Date, o.RecurringGroupID, group)
		}
		if seen[o.ReminderID] {
			t.Errorf("duplicate occurrence id %s", o.ReminderID)
		}
		seen[o.ReminderID] = true
	}
}

func TestExpand_OneShot(t *testing.T) {
	spec := types.ReminderSpec{
		MedicineName: "Metformin",
		ReminderDate: "2025-08-15",
	}
	occurrences, err := Expand(spec, time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occurrences) != 1 || occurrences[0].Date != "2025-08-15" {
		t.Fatalf("expected single occurrence on 2025-08-15, got %v", expandDates(t, occurrences))
	}
	if occurrences[0].RecurringGroupID != "" {
		t.Errorf("one-shot reminder should not carry a group id")
	}
}

func TestExpand_StartFromToday(t *testing.T) {
	spec := types.ReminderSpec{MedicineName: "Lisinopril", StartFromToday: true}
	occurrences, err := Expand(spec, time.Date(2025, 8, 13, 17, 45, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occurrences) != 1 || occurrences[0].Date != "2025-08-13" {
		t.Fatalf("expected today's occurrence, got %v", expandDates(t, occurrences))
	}
}

func TestExpand_DefaultEndDate(t *testing.T) {
	// Mondays from 2025-08-11 through the default 28-day horizon.
	spec := types.ReminderSpec{
		MedicineName: "Aspirin",
		Recurring:    []string{"mon"},
		ReminderDate: "2025-08-11",
	}
	occurrences, err := Expand(spec, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"2025-08-11", "2025-08-18", "2025-08-25", "2025-09-01", "2025-09-08"}
	got := expandDates(t, occurrences)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestExpand_UnknownTagsFallBackToStart(t *testing.T) {
	spec := types.ReminderSpec{
		MedicineName: "Aspirin",
		Recurring:    []string{"someday", "never"},
		ReminderDate: "2025-08-10",
	}
	occurrences, err := Expand(spec, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(occurrences) != 1 || occurrences[0].Date != "2025-08-10" {
		t.Fatalf("expected start-date fallback, got %v", expandDates(t, occurrences))
	}
}

func TestExpand_MissingStartDate(t *testing.T) {
	_, err := Expand(types.ReminderSpec{MedicineName: "Aspirin"}, time.Now())
	if !errors.Is(err, ErrMissingStartDate) {
		t.Fatalf("expected ErrMissingStartDate, got %v", err)
	}
}

func TestExpand_InvalidDates(t *testing.T) {
	if _, err := Expand(types.ReminderSpec{ReminderDate: "sometime"}, time.Now()); err == nil {
		t.Error("expected error for bad reminder_date")
	}
	if _, err := Expand(types.ReminderSpec{ReminderDate: "2025-08-10", EndDate: "later"}, time.Now()); err == nil {
		t.Error("expected error for bad end_date")
	}
}
