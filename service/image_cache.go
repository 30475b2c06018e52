package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	cacheDir = "cache/cards"
	// Preview settings: long side and JPEG quality for the editor preview,
	// which never needs the full 3000x4200 surface
	previewMaxSize = 800
	previewQuality = 75
)

// EnsureCacheDir ensures the card cache directory exists
func EnsureCacheDir() error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for a rendered guest card
func GetCachePath(eventID, guestID int, size string) string {
	filename := fmt.Sprintf("card_%d_%d_%s.img", eventID, guestID, size)
	return filepath.Join(cacheDir, filename)
}

// CacheExists checks if a cached card exists
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// ReadFromCache reads a rendered card from the cache
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache saves a rendered card to the cache
func SaveToCache(cachePath string, imageData []byte) error {
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// InvalidateGuestCard drops the cached renders of one guest
func InvalidateGuestCard(eventID, guestID int) {
	for _, size := range []string{"full", "preview"} {
		os.Remove(GetCachePath(eventID, guestID, size))
	}
}

// ClearCache drops every cached render. Called after a position save, since
// a layout change invalidates all cards rendered with it.
func ClearCache() error {
	if err := os.RemoveAll(cacheDir); err != nil {
		return fmt.Errorf("failed to clear card cache: %w", err)
	}
	return EnsureCacheDir()
}

// PreviewImage downscales a full-resolution card render to the editor
// preview size and re-encodes it as JPEG
func PreviewImage(cardPNG []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(cardPNG))
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered card: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if width > previewMaxSize || height > previewMaxSize {
		var newWidth, newHeight int
		if width > height {
			newWidth = previewMaxSize
			newHeight = int(float64(height) * float64(previewMaxSize) / float64(width))
		} else {
			newHeight = previewMaxSize
			newWidth = int(float64(width) * float64(previewMaxSize) / float64(height))
		}
		resized = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: previewQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode preview JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
