package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voicevault/voicevault-backend/internal/models"
)

// LocalBackend writes blobs to a server-local directory. The reference it
// records is the path relative to the working directory, served back under
// the /uploads static prefix.
type LocalBackend struct {
	dir string
}

func NewLocalBackend(dir string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalBackend{dir: dir}, nil
}

func (b *LocalBackend) Store(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error) {
	filename := generateFilename(originalName)
	path := filepath.Join(b.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(dst, file)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		Filename: filename,
		Path:     path,
		Size:     size,
	}, nil
}

// Delete unlinks the stored file. A missing file is not fatal. Records that
// carry a Cloudinary reference cannot be cleaned up from here; the orphaned
// remote blob is logged and accepted.
func (b *LocalBackend) Delete(ctx context.Context, rec *models.Recording) error {
	if rec.CloudinaryID != "" {
		log.Printf("Local backend active, skipping remote cleanup for %s", rec.CloudinaryID)
		return nil
	}
	if rec.Path == "" {
		return nil
	}
	if err := os.Remove(rec.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// generateFilename builds a collision-resistant name from the upload time and
// a random suffix, preserving the original extension.
func generateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("recording-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
