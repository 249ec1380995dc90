package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/voicevault/voicevault-backend/internal/config"
	"github.com/voicevault/voicevault-backend/internal/models"
)

// MaxUploadSize is the 50MB cap on a single recording blob.
const MaxUploadSize = 50 << 20

// allowedMIMETypes is the audio-only allow-list for uploads. Browsers report
// a few spellings for the same container, hence the aliases.
var allowedMIMETypes = map[string]bool{
	"audio/webm":  true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/mp3":   true,
	"audio/mpeg":  true,
	"audio/ogg":   true,
	"audio/mp4":   true,
	"audio/x-m4a": true,
}

// StoredFile describes a blob after a successful store. Exactly one reference
// is populated: Path for the local backend, RemoteURL + RemoteID for Cloudinary.
type StoredFile struct {
	Filename  string
	Path      string
	RemoteURL string
	RemoteID  string
	Size      int64
}

// Backend is the uniform store-blob/get-reference contract. Delete dispatches
// on the record's reference shape, not the active backend, so records created
// under the other backend stay deletable after a backend switch.
type Backend interface {
	Store(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error)
	Delete(ctx context.Context, rec *models.Recording) error
}

// ValidationError marks a user-correctable upload problem (bad MIME type,
// oversize blob). Handlers map it to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// ValidateUpload checks the declared MIME type against the audio allow-list
// and enforces the size cap. Applies to both backends.
func ValidateUpload(header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	if !allowedMIMETypes[contentType] {
		return &ValidationError{msg: fmt.Sprintf("invalid file type %q: only audio files are allowed", contentType)}
	}
	if header.Size > MaxUploadSize {
		return &ValidationError{msg: fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", header.Size, MaxUploadSize)}
	}
	return nil
}

// Select picks the storage backend once at process start: Cloudinary when all
// three provider credentials are present, the local disk otherwise. The
// choice is fixed for the process lifetime.
func Select(cfg *config.Config) (Backend, error) {
	if cfg.HasCloudinary() {
		backend, err := NewCloudinaryBackend(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Cloudinary storage backend selected")
		return backend, nil
	}

	backend, err := NewLocalBackend(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Local storage backend selected (dir: %s)", cfg.UploadDir)
	return backend, nil
}
