package storage

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazakov/adboard-backend/internal/apperr"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	s, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("not really a jpeg, but bytes are bytes")
	rel, err := s.Save("ads", 42, "photo.JPG", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "ads/42/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	rc, size, err := s.Load(rel)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int64(len(content)), size)
}

func TestLoadMissing(t *testing.T) {
	s, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Load("ads/1/nope.png")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestLoadRejectsTraversal(t *testing.T) {
	s, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.Load("../../../etc/passwd")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s, err := NewImageStore(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, s.Remove("ads/9/gone.png"))
}
