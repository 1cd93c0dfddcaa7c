package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cosmic_quiz_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) (*StorageService, string) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = dir
	return NewStorageService(cfg), dir
}

func TestLocalStorageUploadAndURL(t *testing.T) {
	svc, dir := newLocalStorage(t)

	url, err := svc.UploadIcon(context.Background(), "badges/b1.png",
		strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/badges/b1.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "badges", "b1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	svc, dir := newLocalStorage(t)

	_, err := svc.UploadIcon(context.Background(), "badges/b1.png",
		strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)

	require.NoError(t, svc.Provider.Delete(context.Background(), "badges/b1.png"))
	_, err = os.Stat(filepath.Join(dir, "badges", "b1.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageServiceUnknownTypeFallsBackToLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.Type = "tape-drive"
	cfg.Storage.LocalPath = t.TempDir()

	svc := NewStorageService(cfg)
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
