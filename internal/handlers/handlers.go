package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/voicevault/voicevault-backend/internal/config"
	"github.com/voicevault/voicevault-backend/internal/storage"
)

var (
	cfg            *config.Config
	storageBackend storage.Backend
)

// Init wires the loaded config and the selected storage backend into the
// handlers package. Called once from main before routes are registered.
func Init(c *config.Config, backend storage.Backend) {
	cfg = c
	storageBackend = backend
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// serverError logs the underlying failure server-side and returns a generic
// message to the caller.
func serverError(w http.ResponseWriter, err error) {
	log.Printf("ERROR: %v", err)
	writeMessage(w, http.StatusInternalServerError, "Server error")
}
