package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("photo-bytes"), "employees/photo.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "employees/photo.jpg", path)

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "photo-bytes", string(content))

	require.NoError(t, s.Delete(ctx, path))

	exists, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "employees/missing.png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, path := range []string{"../escape.txt", "employees/../../escape.txt", "..", ""} {
		_, err := s.Upload(ctx, strings.NewReader("x"), path, "text/plain")
		assert.Error(t, err, path)

		_, err = s.Exists(ctx, path)
		assert.Error(t, err, path)
	}
}

func TestLocalStorage_DownloadDirectory(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("x"), "employees/a.png", "image/png")
	require.NoError(t, err)

	_, err = s.Download(ctx, "employees")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
