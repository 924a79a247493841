package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/types"
)

// Typed access to the per-user subtrees. Malformed documents are logged
// and replaced with defaults so one bad record never fails a request;
// transport errors still propagate.

func LoadVoiceState(ctx context.Context, s Store, uid string) (types.VoiceState, error) {
	var voice types.VoiceState
	if _, err := s.Get(ctx, VoiceHistoryPath(uid), &voice); err != nil {
		if !errors.Is(err, ErrDecode) {
			return types.VoiceState{}, err
		}
		config.Logger.Warnf("Malformed voice state for %s, using defaults: %v", uid, err)
		voice = types.VoiceState{}
	}
	if voice.AskedReminders == nil {
		voice.AskedReminders = map[string]types.AskedState{}
	}
	if voice.CategoryUsage == nil {
		voice.CategoryUsage = map[string]int{}
	}
	if voice.SubcategoryUsage == nil {
		voice.SubcategoryUsage = map[string]int{}
	}
	return voice, nil
}

// SaveVoiceState persists the whole document in one write: history, asked
// flags and usage counters land together or not at all.
func SaveVoiceState(ctx context.Context, s Store, uid string, voice types.VoiceState) error {
	return s.Set(ctx, VoiceHistoryPath(uid), voice)
}

type importantQuestionsDoc struct {
	Entries []types.ImportantQuestion `json:"entries"`
}

func LoadImportantQuestions(ctx context.Context, s Store, uid string) ([]types.ImportantQuestion, error) {
	var doc importantQuestionsDoc
	if _, err := s.Get(ctx, ImportantQuestionsPath(uid), &doc); err != nil {
		if !errors.Is(err, ErrDecode) {
			return nil, err
		}
		config.Logger.Warnf("Malformed important questions for %s, using defaults: %v", uid, err)
		doc = importantQuestionsDoc{}
	}
	return doc.Entries, nil
}

func SaveImportantQuestions(ctx context.Context, s Store, uid string, entries []types.ImportantQuestion) error {
	return s.Set(ctx, ImportantQuestionsPath(uid), importantQuestionsDoc{Entries: entries})
}

// LoadReminders walks the per-date occurrence records in date order, then
// id order within a date. A record that fails to decode is skipped.
func LoadReminders(ctx context.Context, s Store, uid string) ([]types.ReminderOccurrence, error) {
	dates, err := s.List(ctx, RemindersPath(uid))
	if err != nil {
		return nil, err
	}
	var reminders []types.ReminderOccurrence
	for _, date := range dates {
		ids, err := s.List(ctx, ReminderDatePath(uid, date))
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			var occurrence types.ReminderOccurrence
			ok, err := s.Get(ctx, ReminderPath(uid, date, id), &occurrence)
			if err != nil {
				if !errors.Is(err, ErrDecode) {
					return nil, err
				}
				config.Logger.Warnf("Malformed reminder %s/%s for %s, skipping: %v", date, id, uid, err)
				continue
			}
			if !ok {
				continue
			}
			if occurrence.ReminderID == "" {
				occurrence.ReminderID = id
			}
			if occurrence.Date == "" {
				occurrence.Date = date
			}
			reminders = append(reminders, occurrence)
		}
	}
	return reminders, nil
}

// RemindersByID normalizes the ordered occurrence list into the id-keyed
// map the adherence aggregator consumes. Occurrences missing an id get a
// positional one, matching how list-shaped legacy records were keyed.
func RemindersByID(reminders []types.ReminderOccurrence) map[string]types.ReminderOccurrence {
	byID := make(map[string]types.ReminderOccurrence, len(reminders))
	for i, reminder := range reminders {
		id := reminder.ReminderID
		if id == "" {
			id = strconv.Itoa(i)
		}
		byID[id] = reminder
	}
	return byID
}

func SaveOccurrences(ctx context.Context, s Store, uid string, occurrences []types.ReminderOccurrence) error {
	for _, occurrence := range occurrences {
		if err := s.Set(ctx, ReminderPath(uid, occurrence.Date, occurrence.ReminderID), occurrence); err != nil {
			return err
		}
	}
	return nil
}

func DeleteOccurrence(ctx context.Context, s Store, uid, date, reminderID string) error {
	return s.Delete(ctx, ReminderPath(uid, date, reminderID))
}

// DeleteRecurringGroup removes every occurrence sharing a recurring group
// id, across all dates. Returns how many records were deleted.
func DeleteRecurringGroup(ctx context.Context, s Store, uid, groupID string) (int, error) {
	reminders, err := LoadReminders(ctx, s, uid)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, reminder := range reminders {
		if reminder.RecurringGroupID != groupID {
			continue
		}
		if err := s.Delete(ctx, ReminderPath(uid, reminder.Date, reminder.ReminderID)); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func LoadResponses(ctx context.Context, s Store, uid string) (map[string][]types.ResponseEntry, error) {
	ids, err := s.List(ctx, ResponsesPrefix(uid))
	if err != nil {
		return nil, err
	}
	responses := make(map[string][]types.ResponseEntry, len(ids))
	for _, id := range ids {
		var entries []types.ResponseEntry
		if _, err := s.Get(ctx, ResponsesPath(uid, id), &entries); err != nil {
			if !errors.Is(err, ErrDecode) {
				return nil, err
			}
			config.Logger.Warnf("Malformed response log %s for %s, skipping: %v", id, uid, err)
			continue
		}
		responses[id] = entries
	}
	return responses, nil
}

// AppendResponse appends one entry to a reminder's response log,
// stamping it with now.
func AppendResponse(ctx context.Context, s Store, uid, reminderID string, entry types.ResponseEntry, now time.Time) error {
	var entries []types.ResponseEntry
	if _, err := s.Get(ctx, ResponsesPath(uid, reminderID), &entries); err != nil {
		if !errors.Is(err, ErrDecode) {
			return err
		}
		config.Logger.Warnf("Malformed response log %s for %s, starting fresh: %v", reminderID, uid, err)
		entries = nil
	}
	entry.Timestamp = now.Format(time.RFC3339)
	entries = append(entries, entry)
	return s.Set(ctx, ResponsesPath(uid, reminderID), entries)
}

func LoadProfile(ctx context.Context, s Store, uid string) (types.UserProfile, error) {
	var profile types.UserProfile
	if _, err := s.Get(ctx, UserDetailsPath(uid), &profile); err != nil {
		if !errors.Is(err, ErrDecode) {
			return types.UserProfile{}, err
		}
		config.Logger.Warnf("Malformed user details for %s, using defaults: %v", uid, err)
		profile = types.UserProfile{}
	}
	return profile, nil
}

func LoadPushToken(ctx context.Context, s Store, uid string) (string, error) {
	var token string
	if _, err := s.Get(ctx, PushTokenPath(uid), &token); err != nil {
		if !errors.Is(err, ErrDecode) {
			return "", err
		}
		config.Logger.Warnf("Malformed push token for %s, ignoring: %v", uid, err)
		return "", nil
	}
	return token, nil
}

// LoadParentIDs returns the ids of linked family accounts.
func LoadParentIDs(ctx context.Context, s Store, uid string) ([]string, error) {
	parents := map[string]bool{}
	if _, err := s.Get(ctx, ParentsPath(uid), &parents); err != nil {
		if !errors.Is(err, ErrDecode) {
			return nil, err
		}
		config.Logger.Warnf("Malformed parents record for %s, ignoring: %v", uid, err)
		return nil, nil
	}
	ids := make([]string, 0, len(parents))
	for id, linked := range parents {
		if linked {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ListUserIDs enumerates every user id in the store.
func ListUserIDs(ctx context.Context, s Store) ([]string, error) {
	return s.List(ctx, UsersPrefix)
}
