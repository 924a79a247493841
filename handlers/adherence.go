package handlers

import (
	"net/http"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/engagement"
	"clementus360/care-companion/identity"
	"clementus360/care-companion/store"
	"clementus360/care-companion/types"
)

// AdherenceHandler computes the trailing 7-day medication summary for
// the calling user. Read-only.
func AdherenceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	reminders, err := store.LoadReminders(r.Context(), dataStore, userID)
	if err != nil {
		config.Logger.Error("Failed to load reminders for adherence:", err)
		writeError(w, "Could not load reminders", http.StatusInternalServerError)
		return
	}
	responses, err := store.LoadResponses(r.Context(), dataStore, userID)
	if err != nil {
		config.Logger.Error("Failed to load responses for adherence:", err)
		writeError(w, "Could not load responses", http.StatusInternalServerError)
		return
	}

	summary := engagement.Summarize(store.RemindersByID(reminders), responses, time.Now())
	writeJSON(w, http.StatusOK, types.AdherenceResponse{
		Success: true,
		Summary: summary,
	})
}
