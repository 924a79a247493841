package llm

import (
	"strings"
	"testing"
	"time"

	"clementus360/care-companion/types"
)

func TestTimeBasedGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{9, "Good morning, Asha!"},
		{13, "Good evening, Asha!"},
		{20, "Good night, Asha!"},
	}
	for _, tt := range tests {
		now := time.Date(2025, 8, 13, tt.hour, 0, 0, 0, time.UTC)
		if got := TimeBasedGreeting("Asha", now); got != tt.want {
			t.Errorf("hour %d: got %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestBuildCompanionPrompt(t *testing.T) {
	profile := types.UserProfile{
		Name:              "Asha",
		Age:               "72",
		Hobby:             "gardening",
		SelectedInterests: []string{"music", "cooking"},
		Allergies:         []string{"penicillin"},
	}
	reminders := []types.ReminderOccurrence{
		{MedicineName: "Aspirin", Time: "08:00"},
	}

	got := BuildCompanionPrompt(profile, reminders)
	for _, want := range []string{
		"Asha", "72", "gardening", "music, cooking", "penicillin", "Aspirin at 08:00",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildCompanionPrompt_EmptyProfile(t *testing.T) {
	got := BuildCompanionPrompt(types.UserProfile{}, nil)
	for _, want := range []string{"there", "unknown", "no reminders set"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing fallback %q:\n%s", want, got)
		}
	}
}

func TestBuildQuestionPrompt(t *testing.T) {
	profile := types.UserProfile{Name: "Asha", SelectedInterests: []string{"music"}}
	got := BuildQuestionPrompt(profile, "Hobbies and Interests", "gardening")

	for _, want := range []string{
		"'Hobbies and Interests'",
		"'gardening'",
		"Return only the question as a string.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q:\n%s", want, got)
		}
	}
}
