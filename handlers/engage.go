package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/engagement"
	"clementus360/care-companion/identity"
	"clementus360/care-companion/store"
	"clementus360/care-companion/types"
)

// EngageHandler runs one proactive-engagement trigger for the calling
// user: load state, decide the next outbound turn, persist the mutated
// state in one write, push the message.
func EngageHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		config.Logger.Warn("Unauthorized engage request:", err)
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	// The reply is optional: an empty body is a pure proactive trigger.
	var req types.EngageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	state, err := loadUserState(r, userID)
	if err != nil {
		config.Logger.Error("Failed to load user state:", err)
		writeError(w, "Could not load user state", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	decision, err := engine.Decide(r.Context(), state, req.Reply, now)
	if err != nil {
		if errors.Is(err, engagement.ErrReplyTooLong) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.Logger.Error("Engagement decision failed:", err)
		writeError(w, "Could not process engagement", http.StatusInternalServerError)
		return
	}

	if err := persistUserState(r, userID, state); err != nil {
		config.Logger.Error("Failed to persist user state:", err)
		writeError(w, "Could not save engagement state", http.StatusInternalServerError)
		return
	}

	if token, err := store.LoadPushToken(r.Context(), dataStore, userID); err == nil && token != "" {
		push.Send(token, "Proactive Talk", decision.Response)
	}

	writeJSON(w, http.StatusOK, types.EngageResponse{
		Success:   true,
		Response:  decision.Response,
		Timestamp: now.Format(time.RFC3339),
	})
}

func loadUserState(r *http.Request, userID string) (*engagement.UserState, error) {
	ctx := r.Context()
	profile, err := store.LoadProfile(ctx, dataStore, userID)
	if err != nil {
		return nil, err
	}
	reminders, err := store.LoadReminders(ctx, dataStore, userID)
	if err != nil {
		return nil, err
	}
	voice, err := store.LoadVoiceState(ctx, dataStore, userID)
	if err != nil {
		return nil, err
	}
	important, err := store.LoadImportantQuestions(ctx, dataStore, userID)
	if err != nil {
		return nil, err
	}
	return &engagement.UserState{
		Profile:            profile,
		Reminders:          reminders,
		Voice:              voice,
		ImportantQuestions: important,
	}, nil
}

// persistUserState writes the important-question entries first, then the
// voice document; the voice document carries the history, asked flags
// and counters together so they land in one write.
func persistUserState(r *http.Request, userID string, state *engagement.UserState) error {
	ctx := r.Context()
	if err := store.SaveImportantQuestions(ctx, dataStore, userID, state.ImportantQuestions); err != nil {
		return err
	}
	return store.SaveVoiceState(ctx, dataStore, userID, state.Voice)
}
