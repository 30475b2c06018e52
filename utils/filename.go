package utils

import (
	"regexp"
	"strings"
)

var (
	imageExtRegex  = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|gif)$`)
	dimSuffixRegex = regexp.MustCompile(`[-_](\d{3,4})x(\d{3,4})$`)
)

// DesignNameFromFileName derives a display name for a synced design from its
// Drive filename: the extension and an optional trailing WxH marker are
// stripped and separators become spaces.
// Example: "floral-gala_1500x2100.png" -> "floral gala"
func DesignNameFromFileName(filename string) string {
	name := imageExtRegex.ReplaceAllString(filename, "")
	name = dimSuffixRegex.ReplaceAllString(name, "")
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.TrimSpace(name)
}
