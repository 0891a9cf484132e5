package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dillkhus/order-api/internal/order"
	"github.com/dillkhus/order-api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// lookupCart resolves the {sid} URL param against the session store.
// Writes the error response itself when the session is missing or malformed.
func lookupCart(w http.ResponseWriter, r *http.Request, sessions *session.Store) (uuid.UUID, *order.Cart, bool) {
	sid, err := uuid.Parse(chi.URLParam(r, "sid"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return uuid.Nil, nil, false
	}
	cart, ok := sessions.Get(sid)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return uuid.Nil, nil, false
	}
	return sid, cart, true
}
