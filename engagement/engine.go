package engagement

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/types"
)

// Generator phrases outbound messages. Implementations call a hosted
// model and may fail or time out; the engine degrades locally instead of
// propagating those failures.
type Generator interface {
	Reply(ctx context.Context, profile types.UserProfile, reminders []types.ReminderOccurrence, turns []types.ConversationTurn) (string, error)
	Question(ctx context.Context, profile types.UserProfile, category, subcategory string, turns []types.ConversationTurn) (string, error)
}

// Intent labels what kind of outbound turn a decision produced.
type Intent string

const (
	IntentReminderList      Intent = "reminder_list"
	IntentMedicationCheck   Intent = "medication_check"
	IntentPostReminderCheck Intent = "post_reminder_check"
	IntentRefillCheck       Intent = "refill_check"
	IntentReply             Intent = "reply"
	IntentCategoryQuestion  Intent = "category_question"
)

// Decision is the single outbound turn produced by one trigger.
type Decision struct {
	Intent      Intent `json:"intent"`
	Response    string `json:"response"`
	TurnType    string `json:"turn_type"` // question | response
	ReminderID  string `json:"reminder_id,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

// UserState is everything the engine reads and mutates for one user. It
// is loaded from the store before a trigger and written back after it;
// the engine keeps nothing between calls.
type UserState struct {
	Profile            types.UserProfile
	Reminders          []types.ReminderOccurrence // stored order, not re-sorted
	Voice              types.VoiceState
	ImportantQuestions []types.ImportantQuestion
}

// Engine decides the next outbound message for a user. Safe for use from
// multiple goroutines; the random source is guarded.
type Engine struct {
	gen   Generator
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine builds an engine around a text generator and a seedable
// random source. Production passes a time-seeded source; tests fix the
// seed so category selection is deterministic.
func NewEngine(gen Generator, rng *rand.Rand) *Engine {
	return &Engine{gen: gen, rng: rng}
}

// ErrReplyTooLong rejects oversized replies before any state is touched.
var ErrReplyTooLong = fmt.Errorf("reply exceeds maximum length of %d characters", config.EngagementConfig.MaxMessageLength)

// Decide evaluates one proactive-engagement trigger. The stages form a
// priority list: the first one to produce a decision wins and nothing
// below it runs. Every produced turn is appended to the conversation log
// and the log truncated; the caller persists the mutated state as one
// write.
func (e *Engine) Decide(ctx context.Context, state *UserState, reply string, now time.Time) (Decision, error) {
	if len(reply) > config.EngagementConfig.MaxMessageLength {
		return Decision{}, ErrReplyTooLong
	}
	ensureVoiceDefaults(&state.Voice)

	stages := []func() *Decision{
		func() *Decision { return e.replyIntake(state, reply, now) },
		func() *Decision { return e.medicationDue(state, now) },
		func() *Decision { return e.refillDue(state, now) },
		func() *Decision { return e.directReply(ctx, state, reply) },
		func() *Decision { return e.categoryQuestion(ctx, state) },
	}

	var decision *Decision
	for _, stage := range stages {
		if decision = stage(); decision != nil {
			break
		}
	}
	if decision == nil {
		// categoryQuestion always decides, so this cannot happen.
		return Decision{}, fmt.Errorf("no engagement stage produced a decision")
	}

	state.Voice.History = appendTurn(state.Voice.History, types.ConversationTurn{
		Role:               config.RoleAssistant,
		Content:            decision.Response,
		Timestamp:          now.Format(time.RFC3339),
		Type:               decision.TurnType,
		IsCategoryQuestion: decision.Intent == IntentCategoryQuestion,
		Category:           decision.Category,
		Subcategory:        decision.Subcategory,
	})
	return *decision, nil
}

// replyIntake appends the user's free text to the log, records an
// important-question pair when the text answers a category question, and
// short-circuits the whole decision on a list-reminders request. For any
// other reply it mutates state and lets the later stages run.
func (e *Engine) replyIntake(state *UserState, reply string, now time.Time) *Decision {
	if trimmed(reply) == "" {
		return nil
	}

	var lastQuestion *types.ConversationTurn
	if n := len(state.Voice.History); n > 0 {
		last := state.Voice.History[n-1]
		if last.Role == config.RoleAssistant && last.Type == config.TurnTypeQuestion {
			lastQuestion = &last
		}
	}

	state.Voice.History = appendTurn(state.Voice.History, types.ConversationTurn{
		Role:      config.RoleUser,
		Content:   reply,
		Timestamp: now.Format(time.RFC3339),
		Type:      config.TurnTypeResponse,
	})

	if lastQuestion != nil && lastQuestion.IsCategoryQuestion {
		state.ImportantQuestions = append(state.ImportantQuestions, types.ImportantQuestion{
			Question:          lastQuestion.Content,
			Reply:             reply,
			QuestionTimestamp: lastQuestion.Timestamp,
			ReplyTimestamp:    now.Format(time.RFC3339),
		})
	}

	if IsListRemindersRequest(reply) {
		return &Decision{
			Intent:   IntentReminderList,
			Response: FormatReminderList(state.Reminders),
			TurnType: config.TurnTypeResponse,
		}
	}
	return nil
}

// medicationDue scans reminders in stored order and emits at most one
// question. A reminder inside the 60-minute window is only asked about at
// the exact minute; inside the window but off the exact minute, the scan
// moves on. Past-time reminders get one "did you take it earlier" question
// per day.
func (e *Engine) medicationDue(state *UserState, now time.Time) *Decision {
	today := now.Format("2006-01-02")
	for _, reminder := range state.Reminders {
		if reminder.Time == "" {
			continue
		}
		flags := askedToday(state.Voice.AskedReminders, reminder.ReminderID, today)
		if WithinMinutes(reminder.Time, now, config.EngagementConfig.WithinHourMinutes) && !flags.WithinHourAsked {
			if WithinMinutes(reminder.Time, now, config.EngagementConfig.ExactMatchMinutes) {
				flags.WithinHourAsked = true
				state.Voice.AskedReminders[reminder.ReminderID] = flags
				return &Decision{
					Intent: IntentMedicationCheck,
					Response: fmt.Sprintf("Hey %s, it's time for your %s. Have you taken it yet?",
						displayName(state.Profile), medicineName(reminder)),
					TurnType:   config.TurnTypeQuestion,
					ReminderID: reminder.ReminderID,
				}
			}
			// Inside the window but not at the exact minute: hold off and
			// keep scanning the remaining reminders.
		} else if IsAfter(reminder.Time, now) && !flags.PostReminderAsked {
			flags.PostReminderAsked = true
			state.Voice.AskedReminders[reminder.ReminderID] = flags
			return &Decision{
				Intent: IntentPostReminderCheck,
				Response: fmt.Sprintf("Hi %s, did you take your %s earlier today at %s?",
					displayName(state.Profile), medicineName(reminder), reminder.Time),
				TurnType:   config.TurnTypeQuestion,
				ReminderID: reminder.ReminderID,
			}
		}
	}
	return nil
}

// refillDue emits at most one refill question per trigger, once per day
// per reminder, when the refill date is within the threshold.
func (e *Engine) refillDue(state *UserState, now time.Time) *Decision {
	today := now.Format("2006-01-02")
	for _, reminder := range state.Reminders {
		if reminder.SetRefillDate == "" {
			continue
		}
		flags := askedToday(state.Voice.AskedReminders, reminder.ReminderID, today)
		if RefillNear(reminder.SetRefillDate, now, config.EngagementConfig.RefillThresholdDays) && !flags.RefillAsked {
			flags.RefillAsked = true
			state.Voice.AskedReminders[reminder.ReminderID] = flags
			return &Decision{
				Intent: IntentRefillCheck,
				Response: fmt.Sprintf("Hey %s, your %s is due for a refill soon. Have you planned to get it refilled?",
					displayName(state.Profile), medicineName(reminder)),
				TurnType:   config.TurnTypeQuestion,
				ReminderID: reminder.ReminderID,
			}
		}
	}
	return nil
}

// directReply answers the user's free text through the generator. Only
// reached when a reply is present and no reminder question fired.
func (e *Engine) directReply(ctx context.Context, state *UserState, reply string) *Decision {
	if trimmed(reply) == "" {
		return nil
	}
	content, err := e.gen.Reply(ctx, state.Profile, state.Reminders, recentTurns(state.Voice.History))
	if err != nil {
		config.Logger.Warnf("Text generation failed for reply, using fallback: %v", err)
		content = "I'm having trouble responding right now. Could you say that again in a moment?"
	}
	return &Decision{Intent: IntentReply, Response: content, TurnType: config.TurnTypeResponse}
}

// categoryQuestion is the default stage. It picks a category and
// subcategory by usage-weighted draw, bumps both counters at decision
// time (so a downstream failure cannot double-count on retry), and only
// then asks the generator to phrase the question. Generation failure
// degrades to an empty question; the bookkeeping still stands.
func (e *Engine) categoryQuestion(ctx context.Context, state *UserState) *Decision {
	categories := CategoryNames()
	category := e.pick(categories, Weights(categories, state.Voice.CategoryUsage, 1.0))
	subcategories := SubcategoriesOf(category)
	subcategory := e.pick(subcategories, Weights(subcategories, state.Voice.SubcategoryUsage, 1.0))

	state.Voice.CategoryUsage[category]++
	state.Voice.SubcategoryUsage[subcategory]++

	content, err := e.gen.Question(ctx, state.Profile, category, subcategory, recentTurns(state.Voice.History))
	if err != nil {
		config.Logger.Warnf("Text generation failed for category question %q/%q: %v", category, subcategory, err)
		content = ""
	}
	return &Decision{
		Intent:      IntentCategoryQuestion,
		Response:    content,
		TurnType:    config.TurnTypeQuestion,
		Category:    category,
		Subcategory: subcategory,
	}
}

func (e *Engine) pick(items []string, weights []float64) string {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return Pick(e.rng, items, weights)
}

// askedToday resolves the flags for a reminder against the current date.
// Flags carrying a stale date read as all-false; they are never cleared
// in place, just superseded when a new question is recorded.
func askedToday(asked map[string]types.AskedState, reminderID, today string) types.AskedState {
	flags := asked[reminderID]
	if flags.Date != today {
		return types.AskedState{Date: today}
	}
	return flags
}

// appendTurn appends and truncates the log to the newest MaxHistoryLength
// entries, preserving relative order.
func appendTurn(history []types.ConversationTurn, turn types.ConversationTurn) []types.ConversationTurn {
	history = append(history, turn)
	if max := config.EngagementConfig.MaxHistoryLength; len(history) > max {
		history = history[len(history)-max:]
	}
	return history
}

func recentTurns(history []types.ConversationTurn) []types.ConversationTurn {
	if n := config.EngagementConfig.RecentTurnsForModel; len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

func ensureVoiceDefaults(voice *types.VoiceState) {
	if voice.AskedReminders == nil {
		voice.AskedReminders = map[string]types.AskedState{}
	}
	if voice.CategoryUsage == nil {
		voice.CategoryUsage = map[string]int{}
	}
	if voice.SubcategoryUsage == nil {
		voice.SubcategoryUsage = map[string]int{}
	}
}

func displayName(profile types.UserProfile) string {
	if profile.Name == "" {
		return "there"
	}
	return profile.Name
}

func medicineName(reminder types.ReminderOccurrence) string {
	if reminder.MedicineName == "" {
		return "medication"
	}
	return reminder.MedicineName
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
