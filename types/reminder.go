package types

// ReminderSpec is one reminder as submitted by the client. A spec may
// recur on weekdays; expansion turns it into dated occurrences.
type ReminderSpec struct {
	MedicineName   string   `json:"medicine_name"`
	Time           string   `json:"time"` // HH:MM or ISO timestamp
	Dosage         string   `json:"dosage,omitempty"`
	Recurring      []string `json:"recurring,omitempty"` // weekday tags, empty = one-shot
	ReminderDate   string   `json:"reminder_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	StartFromToday bool     `json:"start_from_today,omitempty"`
	SetRefillDate  string   `json:"set_refill_date,omitempty"`
}

// ReminderOccurrence is one persisted dated instance of a spec. Its date
// is fixed at creation and never recomputed; occurrences generated from
// the same recurring spec share a RecurringGroupID.
type ReminderOccurrence struct {
	ReminderID       string `json:"reminder_id"`
	RecurringGroupID string `json:"recurring_group_id,omitempty"`
	Date             string `json:"date"` // YYYY-MM-DD
	MedicineName     string `json:"medicine_name"`
	Time             string `json:"time"`
	Dosage           string `json:"dosage,omitempty"`
	SetRefillDate    string `json:"set_refill_date,omitempty"`
	UpdatedAtTime    string `json:"updated_at_time,omitempty"`
}

type CreateRemindersRequest struct {
	Reminders []ReminderSpec `json:"reminders"`
}

type CreateRemindersResponse struct {
	Success      bool                 `json:"success"`
	Reminders    []ReminderOccurrence `json:"reminders,omitempty"`
	ErrorMessage string               `json:"error,omitempty"` // only set on failure
}

type GetRemindersResponse struct {
	Success      bool                 `json:"success"`
	Reminders    []ReminderOccurrence `json:"reminders"`
	ErrorMessage string               `json:"error,omitempty"`
}

type DeleteReminderRequest struct {
	Date             string `json:"date,omitempty"`
	ReminderID       string `json:"reminder_id,omitempty"`
	RecurringGroupID string `json:"recurring_group_id,omitempty"` // set to delete the whole series
}

type DeleteReminderResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type ReminderResponseRequest struct {
	ReminderID   string `json:"reminder_id"`
	MedicineName string `json:"medicine_name"`
	Response     string `json:"response"` // yes | no
}
