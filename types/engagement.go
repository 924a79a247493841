package types

// ConversationTurn is one entry in the proactive-talk log. The log is
// append-only and truncated to the newest entries after each append.
type ConversationTurn struct {
	Role               string `json:"role"` // user | assistant
	Content            string `json:"content"`
	Timestamp          string `json:"timestamp"`
	Type               string `json:"type"` // question | response
	IsCategoryQuestion bool   `json:"is_category_question,omitempty"`
	Category           string `json:"category,omitempty"`
	Subcategory        string `json:"subcategory,omitempty"`
}

// AskedState records whether a question of each kind has already been
// raised for a reminder. Flags only count when Date equals the current
// date; a stale date means the flags read as false.
type AskedState struct {
	WithinHourAsked   bool   `json:"within_hour_asked,omitempty"`
	PostReminderAsked bool   `json:"post_reminder_asked,omitempty"`
	RefillAsked       bool   `json:"refill_asked,omitempty"`
	Date              string `json:"date,omitempty"` // YYYY-MM-DD
}

// VoiceState is the persisted proactive-talk document for one user:
// conversation log, per-reminder asked flags and topic usage counters.
// It is written back as a single document so partial updates are never
// observable.
type VoiceState struct {
	History          []ConversationTurn    `json:"history"`
	AskedReminders   map[string]AskedState `json:"asked_reminders"`
	CategoryUsage    map[string]int        `json:"category_usage"`
	SubcategoryUsage map[string]int        `json:"subcategory_usage"`
}

// ImportantQuestion pairs a category question with the reply that
// immediately followed it. Entries are retained long-term.
type ImportantQuestion struct {
	Question          string `json:"question"`
	Reply             string `json:"reply"`
	QuestionTimestamp string `json:"question_timestamp"`
	ReplyTimestamp    string `json:"reply_timestamp"`
}

type EngageRequest struct {
	Reply string `json:"reply,omitempty"`
}

type EngageResponse struct {
	Success      bool   `json:"success"`
	Response     string `json:"response"`
	Timestamp    string `json:"timestamp,omitempty"`
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}
