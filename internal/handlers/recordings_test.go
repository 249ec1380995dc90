package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicevault/voicevault-backend/internal/config"
	"github.com/voicevault/voicevault-backend/internal/storage"
)

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func initUploadHandlers(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	backend, err := storage.NewLocalBackend(dir)
	require.NoError(t, err)
	Init(&config.Config{UploadDir: dir}, backend)
	return dir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must leave nothing on disk")
}

func TestUploadRecordingOversizeBodyAborted(t *testing.T) {
	dir := initUploadHandlers(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "huge.webm")
	require.NoError(t, err)
	_, err = io.Copy(part, io.LimitReader(zeroReader{}, storage.MaxUploadSize+(2<<20)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recordings/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	UploadRecording(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertDirEmpty(t, dir)
}

func TestUploadRecordingRejectsDisallowedType(t *testing.T) {
	dir := initUploadHandlers(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="audio"; filename="notes.txt"`)
	hdr.Set("Content-Type", "text/plain")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("just some text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recordings/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	UploadRecording(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assertDirEmpty(t, dir)
}
