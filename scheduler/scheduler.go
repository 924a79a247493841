package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"clementus360/care-companion/config"
	"clementus360/care-companion/engagement"
	"clementus360/care-companion/llm"
	"clementus360/care-companion/notify"
	"clementus360/care-companion/store"
)

// Waking hours for the scheduled check-in; outside this window the tick
// is a no-op so nobody is pinged at night.
const (
	activeStartHour = 8
	activeEndHour   = 21
)

// Scheduler runs the periodic check-in over every user. Users are
// processed with bounded concurrency and one user's failure never aborts
// the batch.
type Scheduler struct {
	store    store.Store
	engine   *engagement.Engine
	push     notify.Notifier
	interval time.Duration
	limit    int
}

func New(s store.Store, engine *engagement.Engine, push notify.Notifier, interval time.Duration, limit int) *Scheduler {
	if limit < 1 {
		limit = 1
	}
	return &Scheduler{store: s, engine: engine, push: push, interval: interval, limit: limit}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx, time.Now()); err != nil {
				config.Logger.Errorf("Scheduled check-in batch failed: %v", err)
			}
		}
	}
}

// RunOnce processes a single tick for every user at the given instant.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) error {
	if !engagement.InPeriod(now.Format("15:04"), activeStartHour, activeEndHour) {
		config.Logger.Debug("Outside active hours, skipping scheduled check-in")
		return nil
	}

	userIDs, err := store.ListUserIDs(ctx, s.store)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		config.Logger.Info("No users found for scheduled check-in")
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			if err := s.engageUser(ctx, userID, now); err != nil {
				// Isolated: log and keep the batch going.
				config.Logger.Warnf("Scheduled check-in for %s failed: %v", userID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) engageUser(ctx context.Context, userID string, now time.Time) error {
	profile, err := store.LoadProfile(ctx, s.store, userID)
	if err != nil {
		return err
	}
	reminders, err := store.LoadReminders(ctx, s.store, userID)
	if err != nil {
		return err
	}
	voice, err := store.LoadVoiceState(ctx, s.store, userID)
	if err != nil {
		return err
	}
	important, err := store.LoadImportantQuestions(ctx, s.store, userID)
	if err != nil {
		return err
	}

	state := &engagement.UserState{
		Profile:            profile,
		Reminders:          reminders,
		Voice:              voice,
		ImportantQuestions: important,
	}
	decision, err := s.engine.Decide(ctx, state, "", now)
	if err != nil {
		return err
	}

	if err := store.SaveVoiceState(ctx, s.store, userID, state.Voice); err != nil {
		return err
	}

	if token, err := store.LoadPushToken(ctx, s.store, userID); err == nil && token != "" {
		body := decision.Response
		// Scheduled category questions open with a greeting; reminder
		// questions already address the user.
		if decision.Intent == engagement.IntentCategoryQuestion && body != "" {
			name := profile.Name
			if name == "" {
				name = "there"
			}
			body = llm.TimeBasedGreeting(name, now) + " " + body
		}
		s.push.Send(token, "Daily Check-In", body)
	}
	return nil
}
