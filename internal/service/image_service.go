// Package service contains the business logic layer.
package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"foodgram/internal/config"
	"foodgram/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaDir   = "media"
	RecipeImageMaxPx  = 2048
	RecipeImageMaxLen = 10 * 1024 * 1024 // decoded payload cap
	WebPQuality       = 75
)

// ImageService stores recipe images. Clients submit images inline as
// base64 data URIs; the service decodes, bounds and re-encodes them as
// WebP files under the media directory.
type ImageService struct {
	mediaDir string
}

func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{mediaDir: mediaDir}
}

// SaveDataURI decodes a "data:image/...;base64,..." payload, re-encodes it
// as WebP and writes it under the media dir. Returns the relative path
// stored on the recipe.
func (s *ImageService) SaveDataURI(dataURI string) (string, error) {
	raw, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	if len(raw) > RecipeImageMaxLen {
		return "", models.NewValidationError(fmt.Sprintf("Image too large (max %dMB)", RecipeImageMaxLen/(1024*1024)))
	}

	decoded, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedImageFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	bounded := resizeToFit(decoded, RecipeImageMaxPx, RecipeImageMaxPx)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, bounded, &webp.Options{Quality: WebPQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	rel := filepath.ToSlash(filepath.Join("recipes", uuid.NewString()+".webp"))
	abs := filepath.Join(s.mediaDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o600); err != nil {
		return "", models.NewInternalError(err)
	}
	return rel, nil
}

// Remove deletes a stored image file. Best effort; a missing file is fine.
func (s *ImageService) Remove(relPath string) {
	if relPath == "" || strings.Contains(relPath, "..") {
		return
	}
	_ = os.Remove(filepath.Join(s.mediaDir, filepath.FromSlash(relPath)))
}

// IsDataURI reports whether the payload is an inline base64 image rather
// than a path to an already stored one.
func IsDataURI(v string) bool {
	return strings.HasPrefix(v, "data:image/")
}

func decodeDataURI(dataURI string) ([]byte, error) {
	if !IsDataURI(dataURI) {
		return nil, models.NewValidationError("Image must be a base64 data URI")
	}
	idx := strings.Index(dataURI, ",")
	if idx < 0 || !strings.Contains(dataURI[:idx], ";base64") {
		return nil, models.NewValidationError("Image must be base64 encoded")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		return nil, models.NewValidationError("Invalid base64 image payload")
	}
	if len(raw) == 0 {
		return nil, models.NewValidationError("Empty image payload")
	}
	return raw, nil
}

func isSupportedImageFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
