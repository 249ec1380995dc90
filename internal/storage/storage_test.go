package storage

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevault/voicevault-backend/internal/config"
)

func uploadHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "take-1.webm",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantErr     bool
	}{
		{name: "webm", contentType: "audio/webm", size: 1024, wantErr: false},
		{name: "wav", contentType: "audio/wav", size: 1024, wantErr: false},
		{name: "mp3", contentType: "audio/mp3", size: 1024, wantErr: false},
		{name: "mpeg", contentType: "audio/mpeg", size: 1024, wantErr: false},
		{name: "ogg", contentType: "audio/ogg", size: 1024, wantErr: false},
		{name: "m4a", contentType: "audio/x-m4a", size: 1024, wantErr: false},
		{name: "exactly at the cap", contentType: "audio/webm", size: MaxUploadSize, wantErr: false},
		{name: "video rejected", contentType: "video/mp4", size: 1024, wantErr: true},
		{name: "image rejected", contentType: "image/png", size: 1024, wantErr: true},
		{name: "text rejected", contentType: "text/plain", size: 1024, wantErr: true},
		{name: "missing type rejected", contentType: "", size: 1024, wantErr: true},
		{name: "oversize rejected", contentType: "audio/webm", size: MaxUploadSize + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(uploadHeader(tt.contentType, tt.size))
			if tt.wantErr {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	t.Run("local without credentials", func(t *testing.T) {
		backend, err := Select(&config.Config{UploadDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &LocalBackend{}, backend)
	})

	t.Run("local with partial credentials", func(t *testing.T) {
		backend, err := Select(&config.Config{
			UploadDir:      t.TempDir(),
			CloudinaryName: "demo",
			// API key and secret missing
		})
		require.NoError(t, err)
		assert.IsType(t, &LocalBackend{}, backend)
	})

	t.Run("cloudinary with all credentials", func(t *testing.T) {
		backend, err := Select(&config.Config{
			UploadDir:           t.TempDir(),
			CloudinaryName:      "demo",
			CloudinaryAPIKey:    "key",
			CloudinaryAPISecret: "secret",
		})
		require.NoError(t, err)
		assert.IsType(t, &CloudinaryBackend{}, backend)
	})
}
