package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"clementus360/care-companion/config"
	"clementus360/care-companion/engagement"
	"clementus360/care-companion/identity"
	"clementus360/care-companion/store"
	"clementus360/care-companion/types"
)

const maxRemindersPerRequest = 7

// CreateRemindersHandler expands each submitted spec into dated
// occurrences and persists one record per date.
func CreateRemindersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		config.Logger.Warn("Unauthorized reminder create:", err)
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req types.CreateRemindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Reminders) == 0 || len(req.Reminders) > maxRemindersPerRequest {
		writeError(w, fmt.Sprintf("You must provide between 1 and %d reminders.", maxRemindersPerRequest), http.StatusBadRequest)
		return
	}

	now := time.Now()
	var saved []types.ReminderOccurrence
	for _, spec := range req.Reminders {
		occurrences, err := engagement.Expand(spec, now)
		if err != nil {
			// Validation error: reject the request, nothing persisted yet
			// for this spec.
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		for i := range occurrences {
			occurrences[i].UpdatedAtTime = now.Format(time.RFC3339)
		}
		if err := store.SaveOccurrences(r.Context(), dataStore, userID, occurrences); err != nil {
			config.Logger.Error("Failed to save reminder occurrences:", err)
			writeError(w, "Could not save reminders", http.StatusInternalServerError)
			return
		}
		config.Logger.Infof("Reminder %s scheduled for %d dates", spec.MedicineName, len(occurrences))
		saved = append(saved, occurrences...)
	}

	writeJSON(w, http.StatusOK, types.CreateRemindersResponse{
		Success:   true,
		Reminders: saved,
	})
}

// GetRemindersHandler returns every stored occurrence in date order.
func GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	reminders, err := store.LoadReminders(r.Context(), dataStore, userID)
	if err != nil {
		config.Logger.Error("Failed to load reminders:", err)
		writeError(w, "Could not load reminders", http.StatusInternalServerError)
		return
	}
	if reminders == nil {
		reminders = []types.ReminderOccurrence{}
	}

	writeJSON(w, http.StatusOK, types.GetRemindersResponse{
		Success:   true,
		Reminders: reminders,
	})
}

// DeleteReminderHandler removes one occurrence by date and id, or the
// whole series when a recurring group id is supplied.
func DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req types.DeleteReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.RecurringGroupID != "" {
		deleted, err := store.DeleteRecurringGroup(r.Context(), dataStore, userID, req.RecurringGroupID)
		if err != nil {
			config.Logger.Error("Failed to delete recurring group:", err)
			writeError(w, "Could not delete reminders", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, types.DeleteReminderResponse{
			Success: true,
			Message: fmt.Sprintf("Deleted %d occurrences", deleted),
		})
		return
	}

	if req.Date == "" || req.ReminderID == "" {
		writeError(w, "Missing date or reminder_id", http.StatusBadRequest)
		return
	}
	if err := store.DeleteOccurrence(r.Context(), dataStore, userID, req.Date, req.ReminderID); err != nil {
		config.Logger.Error("Failed to delete reminder:", err)
		writeError(w, "Could not delete reminder", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.DeleteReminderResponse{
		Success: true,
		Message: "Reminder deleted",
	})
}

// RespondReminderHandler appends one answer to a reminder's response log
// and notifies linked family accounts. Notification failures never fail
// the request.
func RespondReminderHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := identity.UserIDFromRequest(r)
	if err != nil {
		writeError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req types.ReminderResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.ReminderID == "" || req.Response == "" {
		writeError(w, "Missing reminder_id or response", http.StatusBadRequest)
		return
	}

	entry := types.ResponseEntry{
		MedicineName: req.MedicineName,
		Response:     req.Response,
	}
	if err := store.AppendResponse(r.Context(), dataStore, userID, req.ReminderID, entry, time.Now()); err != nil {
		config.Logger.Error("Failed to save reminder response:", err)
		writeError(w, "Could not save response", http.StatusInternalServerError)
		return
	}

	notifyParents(r, userID, req)

	writeJSON(w, http.StatusOK, types.DeleteReminderResponse{
		Success: true,
		Message: "Response saved",
	})
}

func notifyParents(r *http.Request, userID string, req types.ReminderResponseRequest) {
	parents, err := store.LoadParentIDs(r.Context(), dataStore, userID)
	if err != nil {
		config.Logger.Warn("Failed to load linked accounts:", err)
		return
	}
	profile, err := store.LoadProfile(r.Context(), dataStore, userID)
	if err != nil && !errors.Is(err, store.ErrDecode) {
		config.Logger.Warn("Failed to load profile for notification:", err)
	}
	name := profile.Name
	if name == "" {
		name = "Your family member"
	}
	for _, parentID := range parents {
		token, err := store.LoadPushToken(r.Context(), dataStore, parentID)
		if err != nil || token == "" {
			continue
		}
		push.Send(token, "Medicine Reminder Update",
			fmt.Sprintf("%s responded: %s to %s", name, req.Response, req.MedicineName))
	}
}
