package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"foodgram/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNGDataURI builds a small valid PNG wrapped in a base64 data URI.
func testPNGDataURI() string {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImageService_SaveDataURI(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := NewImageService(&config.Config{MediaDir: dir})

	rel, err := svc.SaveDataURI(testPNGDataURI())
	require.NoError(t, err)
	assert.Contains(t, rel, "recipes/")
	assert.Contains(t, rel, ".webp")

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestImageService_SaveDataURI_Invalid(t *testing.T) {
	t.Parallel()
	svc := NewImageService(&config.Config{MediaDir: t.TempDir()})

	t.Run("not a data URI", func(t *testing.T) {
		_, err := svc.SaveDataURI("media/existing.webp")
		assertValidationError(t, err)
	})

	t.Run("bad base64", func(t *testing.T) {
		_, err := svc.SaveDataURI("data:image/png;base64,@@@not-base64@@@")
		assertValidationError(t, err)
	})

	t.Run("not an image", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("just text"))
		_, err := svc.SaveDataURI("data:image/png;base64," + payload)
		assertValidationError(t, err)
	})
}

func TestImageService_Remove(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := NewImageService(&config.Config{MediaDir: dir})

	rel, err := svc.SaveDataURI(testPNGDataURI())
	require.NoError(t, err)

	svc.Remove(rel)
	_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(statErr))

	// Path traversal attempts are ignored.
	svc.Remove("../outside.txt")
}
