package models

// Guest represents an invited guest of an event. At render time exactly one
// of three QR states holds: an inline base64 payload (QRImage), a stored
// relative path (QRPath) to be resolved against the configured base URL, or
// neither.
type Guest struct {
	ID        int    `json:"id"`
	EventID   int    `json:"eventId"`
	FullName  string `json:"fullName"`
	Title     string `json:"title,omitempty"`
	CardClass string `json:"cardClass,omitempty"`
	QRImage   string `json:"qrImage,omitempty"`
	QRPath    string `json:"qrPath,omitempty"`
}

// DisplayName is the text drawn on the card: the title, when present,
// prefixes the full name
func (g Guest) DisplayName() string {
	if g.Title != "" {
		return g.Title + " " + g.FullName
	}
	return g.FullName
}
