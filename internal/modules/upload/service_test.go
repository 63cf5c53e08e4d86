package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museumguide/internal/database"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

// mp3Bytes starts with an ID3 tag, which content sniffing maps to audio/mpeg.
var mp3Bytes = append([]byte("ID3"), make([]byte, 16)...)

func newTestService(t *testing.T) (*Service, string) {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Upload{}))

	dir := t.TempDir()
	return NewService(NewRepository(db), dir, "/static/uploads"), dir
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestUpload_PhotoAccepted(t *testing.T) {
	s, dir := newTestService(t)

	u, err := s.Upload(context.Background(), 1, KindPhoto, makeFileHeader(t, "room.png", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "image/png", u.MimeType)
	assert.Equal(t, "photo", u.Kind)
	assert.Contains(t, u.FileURL, "/static/uploads/photo/")

	// the file is really on disk
	data, err := os.ReadFile(filepath.Join(dir, u.FilePath))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestUpload_AudioAccepted(t *testing.T) {
	s, _ := newTestService(t)

	u, err := s.Upload(context.Background(), 1, KindAudio, makeFileHeader(t, "track.mp3", mp3Bytes))
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", u.MimeType)
	assert.Equal(t, "audio", u.Kind)
}

func TestUpload_KindAllowListsAreDisjoint(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Upload(ctx, 1, KindAudio, makeFileHeader(t, "room.png", pngBytes))
	assert.ErrorIs(t, err, ErrInvalidMimeType)

	_, err = s.Upload(ctx, 1, KindPhoto, makeFileHeader(t, "track.mp3", mp3Bytes))
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestUpload_EmptyFile(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Upload(context.Background(), 1, KindPhoto, makeFileHeader(t, "empty.png", nil))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestDelete_RemovesFileAndRecord(t *testing.T) {
	s, dir := newTestService(t)
	ctx := context.Background()

	u, err := s.Upload(ctx, 1, KindPhoto, makeFileHeader(t, "room.png", pngBytes))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, u.ID))

	_, err = os.Stat(filepath.Join(dir, u.FilePath))
	assert.True(t, os.IsNotExist(err))

	_, err = s.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
