package config

// Engagement configuration
var EngagementConfig = struct {
	MaxMessageLength    int
	MaxHistoryLength    int
	WithinHourMinutes   int
	ExactMatchMinutes   int
	RefillThresholdDays int
	DefaultScheduleDays int
	RecentTurnsForModel int
}{
	MaxMessageLength:    1000,
	MaxHistoryLength:    50,
	WithinHourMinutes:   60,
	ExactMatchMinutes:   1,
	RefillThresholdDays: 3,
	DefaultScheduleDays: 28,
	RecentTurnsForModel: 5,
}

// Turn types constants
const (
	TurnTypeQuestion = "question"
	TurnTypeResponse = "response"

	RoleUser      = "user"
	RoleAssistant = "assistant"
)
