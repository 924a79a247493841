package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clementus360/care-companion/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_SetGetRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := types.UserProfile{Name: "Asha", Age: "72", Hobby: "gardening"}
	if err := s.Set(ctx, UserDetailsPath("u1"), in); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out types.UserProfile
	found, err := s.Get(ctx, UserDetailsPath("u1"), &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected document to exist")
	}
	if out.Name != "Asha" || out.Age != "72" || out.Hobby != "gardening" {
		t.Errorf("roundtrip mismatch: %+v", out)
	}
}

func TestSQLite_GetMissing(t *testing.T) {
	s := newTestStore(t)

	var out types.UserProfile
	found, err := s.Get(context.Background(), UserDetailsPath("nobody"), &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Error("missing document must report not found, not an error")
	}
}

func TestSQLite_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	path := UserDetailsPath("u1")

	if err := s.Set(ctx, path, types.UserProfile{Name: "Asha"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, path, types.UserProfile{Name: "Meera"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	var out types.UserProfile
	if _, err := s.Get(ctx, path, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Name != "Meera" {
		t.Errorf("expected last write to win, got %q", out.Name)
	}
}

func TestSQLite_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	path := PushTokenPath("u1")

	if err := s.Set(ctx, path, "token-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(ctx, path); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var out string
	if found, err := s.Get(ctx, path, &out); err != nil || found {
		t.Errorf("expected gone after delete, found=%v err=%v", found, err)
	}
	// deleting a missing path is not an error
	if err := s.Delete(ctx, path); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestSQLite_ListChildSegments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, path := range []string{
		"users/u2/user_details",
		"users/u1/user_details",
		"users/u1/medicine_reminders/2025-08-13/r1",
		"users/u1/medicine_reminders/2025-08-13/r2",
		"users/u1/medicine_reminders/2025-08-14/r3",
	} {
		if err := s.Set(ctx, path, map[string]string{"k": "v"}); err != nil {
			t.Fatalf("set %s: %v", path, err)
		}
	}

	users, err := s.List(ctx, "users")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[0] != "u1" || users[1] != "u2" {
		t.Errorf("expected sorted [u1 u2], got %v", users)
	}

	dates, err := s.List(ctx, RemindersPath("u1"))
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-08-13" || dates[1] != "2025-08-14" {
		t.Errorf("expected two dates, got %v", dates)
	}

	ids, err := s.List(ctx, ReminderDatePath("u1", "2025-08-13"))
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != "r1" || ids[1] != "r2" {
		t.Errorf("expected [r1 r2], got %v", ids)
	}

	empty, err := s.List(ctx, RemindersPath("u2"))
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no children, got %v", empty)
	}
}

func TestLoadVoiceState_MalformedFallsBackToDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// a bare string where the voice document should be
	if err := s.Set(ctx, VoiceHistoryPath("u1"), "oops"); err != nil {
		t.Fatalf("set: %v", err)
	}

	voice, err := LoadVoiceState(ctx, s, "u1")
	if err != nil {
		t.Fatalf("malformed document must not fail the load: %v", err)
	}
	if voice.History != nil {
		t.Errorf("expected empty history, got %v", voice.History)
	}
	if voice.AskedReminders == nil || voice.CategoryUsage == nil || voice.SubcategoryUsage == nil {
		t.Error("defaults must have non-nil maps")
	}
}

func TestVoiceState_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := types.VoiceState{
		History: []types.ConversationTurn{
			{Role: "user", Content: "hello", Type: "response"},
		},
		AskedReminders:   map[string]types.AskedState{"r1": {WithinHourAsked: true, Date: "2025-08-13"}},
		CategoryUsage:    map[string]int{"Hobbies and Interests": 2},
		SubcategoryUsage: map[string]int{"gardening": 1},
	}
	if err := SaveVoiceState(ctx, s, "u1", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := LoadVoiceState(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.History) != 1 || out.History[0].Content != "hello" {
		t.Errorf("history mismatch: %+v", out.History)
	}
	if !out.AskedReminders["r1"].WithinHourAsked {
		t.Error("asked flags lost in roundtrip")
	}
	if out.CategoryUsage["Hobbies and Interests"] != 2 || out.SubcategoryUsage["gardening"] != 1 {
		t.Error("usage counters lost in roundtrip")
	}
}

func TestSaveOccurrencesAndLoadReminders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	occurrences := []types.ReminderOccurrence{
		{ReminderID: "b2", Date: "2025-08-14", MedicineName: "Aspirin", Time: "08:00"},
		{ReminderID: "a1", Date: "2025-08-13", MedicineName: "Metformin", Time: "20:00"},
		{ReminderID: "a2", Date: "2025-08-13", MedicineName: "Aspirin", Time: "08:00"},
	}
	if err := SaveOccurrences(ctx, s, "u1", occurrences); err != nil {
		t.Fatalf("save: %v", err)
	}

	reminders, err := LoadReminders(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("expected 3 reminders, got %d", len(reminders))
	}
	// date order first, id order within a date
	wantOrder := []string{"a1", "a2", "b2"}
	for i, want := range wantOrder {
		if reminders[i].ReminderID != want {
			t.Errorf("position %d: got %s, want %s", i, reminders[i].ReminderID, want)
		}
	}
}

func TestLoadReminders_SkipsMalformedRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	good := types.ReminderOccurrence{ReminderID: "r1", Date: "2025-08-13", MedicineName: "Aspirin"}
	if err := SaveOccurrences(ctx, s, "u1", []types.ReminderOccurrence{good}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Set(ctx, ReminderPath("u1", "2025-08-13", "r2"), 42); err != nil {
		t.Fatalf("set bad record: %v", err)
	}

	reminders, err := LoadReminders(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(reminders) != 1 || reminders[0].ReminderID != "r1" {
		t.Errorf("expected only the good record, got %+v", reminders)
	}
}

func TestDeleteRecurringGroup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	occurrences := []types.ReminderOccurrence{
		{ReminderID: "r1", Date: "2025-08-13", RecurringGroupID: "g1"},
		{ReminderID: "r2", Date: "2025-08-14", RecurringGroupID: "g1"},
		{ReminderID: "r3", Date: "2025-08-14", RecurringGroupID: "g2"},
		{ReminderID: "r4", Date: "2025-08-15"},
	}
	if err := SaveOccurrences(ctx, s, "u1", occurrences); err != nil {
		t.Fatalf("save: %v", err)
	}

	deleted, err := DeleteRecurringGroup(ctx, s, "u1", "g1")
	if err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}

	remaining, err := LoadReminders(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(remaining))
	}
	for _, reminder := range remaining {
		if reminder.RecurringGroupID == "g1" {
			t.Errorf("group member survived: %+v", reminder)
		}
	}
}

func TestRemindersByID(t *testing.T) {
	reminders := []types.ReminderOccurrence{
		{ReminderID: "r1", MedicineName: "Aspirin"},
		{MedicineName: "Metformin"},
		{ReminderID: "r3", MedicineName: "Lisinopril"},
	}
	byID := RemindersByID(reminders)
	if len(byID) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(byID))
	}
	if byID["r1"].MedicineName != "Aspirin" {
		t.Error("keyed entry lost")
	}
	if byID["1"].MedicineName != "Metformin" {
		t.Error("id-less entry should be keyed by its position")
	}
}

func TestAppendResponse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 8, 13, 8, 5, 0, 0, time.UTC)

	first := types.ResponseEntry{MedicineName: "Aspirin", Response: "yes"}
	if err := AppendResponse(ctx, s, "u1", "r1", first, now); err != nil {
		t.Fatalf("append: %v", err)
	}
	second := types.ResponseEntry{MedicineName: "Aspirin", Response: "no"}
	if err := AppendResponse(ctx, s, "u1", "r1", second, now.Add(12*time.Hour)); err != nil {
		t.Fatalf("append: %v", err)
	}

	responses, err := LoadResponses(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := responses["r1"]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Response != "yes" || entries[1].Response != "no" {
		t.Errorf("entries out of order: %+v", entries)
	}
	if entries[0].Timestamp != "2025-08-13T08:05:00Z" {
		t.Errorf("entry not stamped at append time: %q", entries[0].Timestamp)
	}
}

func TestLoadParentIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, ParentsPath("u1"), map[string]bool{"p1": true, "p2": false, "p3": true}); err != nil {
		t.Fatalf("set: %v", err)
	}

	ids, err := LoadParentIDs(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 linked parents, got %v", ids)
	}
	for _, id := range ids {
		if id == "p2" {
			t.Error("unlinked parent must be excluded")
		}
	}

	none, err := LoadParentIDs(ctx, s, "nobody")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no parents for unknown user, got %v", none)
	}
}

func TestImportantQuestionsRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []types.ImportantQuestion{{
		Question:          "What was your favorite childhood game?",
		Reply:             "Hide and seek",
		QuestionTimestamp: "2025-08-13T08:55:00Z",
		ReplyTimestamp:    "2025-08-13T09:00:00Z",
	}}
	if err := SaveImportantQuestions(ctx, s, "u1", entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := LoadImportantQuestions(ctx, s, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Reply != "Hide and seek" {
		t.Errorf("roundtrip mismatch: %+v", out)
	}
}
