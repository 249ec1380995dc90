package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/voicevault/voicevault-backend/internal/middleware"
	"github.com/voicevault/voicevault-backend/internal/models"
	"github.com/voicevault/voicevault-backend/internal/services"
	"github.com/voicevault/voicevault-backend/internal/storage"
)

type RecordingResponse struct {
	Message   string            `json:"message"`
	Recording *models.Recording `json:"recording,omitempty"`
}

// maxFormOverhead leaves room for the duration field and multipart framing
// on top of the blob size cap.
const maxFormOverhead = 1 << 20

// UploadRecording accepts a multipart upload (field "audio", optional field
// "duration" in seconds) and stores it through the active storage backend.
func UploadRecording(w http.ResponseWriter, r *http.Request) {
	// Abort oversize bodies mid-stream instead of buffering them to disk
	// only to reject them afterwards
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadSize+maxFormOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "File too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if err := storage.ValidateUpload(header); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	// Client-reported, untrusted; garbage becomes 0
	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	stored, err := storageBackend.Store(r.Context(), file, header.Filename)
	if err != nil {
		serverError(w, err)
		return
	}

	user := middleware.UserFrom(r.Context())
	recording, err := services.CreateRecording(r.Context(), user.ID, stored, header.Filename, duration)
	if err != nil {
		serverError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, RecordingResponse{
		Message:   "Recording uploaded successfully",
		Recording: recording,
	})
}

// MyRecordings returns the caller's recordings, newest first.
func MyRecordings(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	recordings, err := services.ListRecordingsByUser(r.Context(), user.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordings)
}

// AllRecordings returns every recording joined with its owner's email
// (admin only).
func AllRecordings(w http.ResponseWriter, r *http.Request) {
	recordings, err := services.ListAllRecordings(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordings)
}

// UserRecordings returns one user's recordings, newest first (admin only).
func UserRecordings(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	recordings, err := services.ListRecordingsByUser(r.Context(), userID)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordings)
}

// DeleteRecording removes one of the caller's own recordings. Ownership and
// blob cleanup live in the registry; this only maps its errors to statuses.
func DeleteRecording(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	err := services.DeleteOwnedRecording(r.Context(), chi.URLParam(r, "id"), user.ID, storageBackend)
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Recording not found")
	case errors.Is(err, services.ErrNotOwner):
		writeMessage(w, http.StatusForbidden, "You can only delete your own recordings")
	case err != nil:
		serverError(w, err)
	default:
		writeMessage(w, http.StatusOK, "Recording deleted successfully")
	}
}
