package utils

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DecodeBase64Image decodes an inline image payload. Accepts both a bare
// base64 string and a full data URL (data:image/png;base64,...).
func DecodeBase64Image(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image payload: %w", err)
	}
	return data, nil
}

// JoinURL combines the configured base URL with a stored relative path
func JoinURL(base, rel string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	return base + rel
}

// SniffMIME detects the MIME type from the first bytes of the upload.
// Used to cross-check the declared Content-Type against the actual bytes.
func SniffMIME(data []byte) string {
	return http.DetectContentType(data)
}
