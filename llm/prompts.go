package llm

import (
	"fmt"
	"strings"
	"time"

	"clementus360/care-companion/types"
)

// TimeBasedGreeting opens a message according to the clock.
func TimeBasedGreeting(userName string, now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 12:
		return fmt.Sprintf("Good morning, %s!", userName)
	case hour < 18:
		return fmt.Sprintf("Good evening, %s!", userName)
	default:
		return fmt.Sprintf("Good night, %s!", userName)
	}
}

// BuildCompanionPrompt is the shared system prompt: who the user is and
// how the companion should speak to them.
func BuildCompanionPrompt(profile types.UserProfile, reminders []types.ReminderOccurrence) string {
	name := profile.Name
	if name == "" {
		name = "there"
	}
	age := orUnknown(profile.Age)
	hobbies := orUnknown(profile.Hobby)
	interests := joinOr(profile.SelectedInterests, "no interests specified")
	allergies := joinOr(profile.Allergies, "no allergies specified")
	dietary := profile.DietaryPreference
	if dietary == "" {
		dietary = "none specified"
	}
	history := profile.MedicalHistory
	if history == "" {
		history = "none"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a caring, empathetic best friend for %s, who is %s years old and enjoys %s. ", name, age, hobbies)
	fmt.Fprintf(&b, "Their interests include: %s. ", interests)
	fmt.Fprintf(&b, "Their dietary preference is: %s. ", dietary)
	fmt.Fprintf(&b, "Their allergies include: %s. ", allergies)
	fmt.Fprintf(&b, "Their medical history includes: %s. ", history)
	fmt.Fprintf(&b, "Their medicine reminders are: %s. ", remindersSummary(reminders))
	b.WriteString("Speak warmly and simply, like a close friend checking in, and keep responses short.")
	return b.String()
}

// BuildQuestionPrompt asks the model for exactly one category question.
func BuildQuestionPrompt(profile types.UserProfile, category, subcategory string) string {
	name := profile.Name
	if name == "" {
		name = "there"
	}
	interests := joinOr(profile.SelectedInterests, "no interests specified")

	var b strings.Builder
	b.WriteString(BuildCompanionPrompt(profile, nil))
	fmt.Fprintf(&b, " Generate a single, engaging, casual question for the category '%s' and subcategory '%s' to interact with %s as a best friend would. ", category, subcategory, name)
	b.WriteString("Ensure the question: ")
	fmt.Fprintf(&b, "1. Is strictly relevant to the category '%s' and subcategory '%s'. ", category, subcategory)
	b.WriteString("2. Is light, friendly, and personal, encouraging them to share about their day, feelings, or experiences. ")
	fmt.Fprintf(&b, "3. Uses their interests (e.g., %s), hobbies, age, or medical history (if relevant) to personalize the question. ", interests)
	b.WriteString("4. Is completely unique and distinct from previous questions in the conversation history. ")
	b.WriteString("Return only the question as a string.")
	return b.String()
}

func remindersSummary(reminders []types.ReminderOccurrence) string {
	if len(reminders) == 0 {
		return "no reminders set"
	}
	parts := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		name := reminder.MedicineName
		if name == "" {
			name = "unknown"
		}
		at := reminder.Time
		if at == "" {
			at = "unknown"
		}
		parts = append(parts, name+" at "+at)
	}
	return strings.Join(parts, ", ")
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
