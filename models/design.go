package models

// Design represents a background design fetched from the Google Drive
// design library
type Design struct {
	DriveFileID string `json:"driveFileId"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
}
