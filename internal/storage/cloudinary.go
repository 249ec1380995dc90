package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/voicevault/voicevault-backend/internal/models"
)

// cloudinaryFolder namespaces this app's blobs inside the Cloudinary account.
const cloudinaryFolder = "voice-recordings"

// CloudinaryBackend uploads blobs to Cloudinary. Audio is stored under the
// provider's "video" resource type.
type CloudinaryBackend struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryBackend(cloudName, apiKey, apiSecret string) (*CloudinaryBackend, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryBackend{cld: cld}, nil
}

func (b *CloudinaryBackend) Store(ctx context.Context, file io.Reader, originalName string) (*StoredFile, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	filename := generateFilename(originalName)

	uploadResult, err := b.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       cloudinaryFolder,
		ResourceType: "video", // Cloudinary's resource type for audio
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return &StoredFile{
		Filename:  filename,
		RemoteURL: uploadResult.SecureURL,
		RemoteID:  uploadResult.PublicID,
		Size:      int64(len(fileBytes)),
	}, nil
}

// Delete removes the remote blob for Cloudinary-shaped records and falls back
// to a local unlink for records created under the local backend.
func (b *CloudinaryBackend) Delete(ctx context.Context, rec *models.Recording) error {
	if rec.CloudinaryID != "" {
		_, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{
			PublicID:     rec.CloudinaryID,
			ResourceType: "video",
		})
		if err != nil {
			return fmt.Errorf("failed to delete from Cloudinary: %w", err)
		}
		return nil
	}

	if rec.Path == "" {
		return nil
	}
	if err := os.Remove(rec.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to unlink local file %s: %v", rec.Path, err)
	}
	return nil
}
