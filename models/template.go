package models

import "time"

// Template is the uploaded background image for an event's cards. Image
// holds the raw encoded bytes exactly as uploaded; Width and Height are the
// dimensions decoded from the bytes, never the uploader's claim.
type Template struct {
	EventID   int       `json:"eventId"`
	Image     []byte    `json:"-"`
	MIMEType  string    `json:"mimeType"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateUploadResult is returned to the caller after a successful upload
type TemplateUploadResult struct {
	EventID int    `json:"eventId"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Path    string `json:"path"`
}
