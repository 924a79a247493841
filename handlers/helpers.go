package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"clementus360/care-companion/engagement"
	"clementus360/care-companion/notify"
	"clementus360/care-companion/store"
	"clementus360/care-companion/types"
)

var (
	dataStore store.Store
	engine    *engagement.Engine
	push      notify.Notifier
)

// Init wires the handlers' collaborators. Called once from main before
// the server starts serving.
func Init(s store.Store, gen engagement.Generator, n notify.Notifier) {
	dataStore = s
	engine = engagement.NewEngine(gen, rand.New(rand.NewSource(time.Now().UnixNano())))
	push = n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, status int) {
	resp := types.ErrorResponse{
		Success:      false,
		ErrorMessage: message,
	}
	writeJSON(w, status, resp)
}
