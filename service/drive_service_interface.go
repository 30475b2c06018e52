package service

import "event-cards-me/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListDesigns(folderID string) ([]models.Design, error)
	DownloadImage(fileID string) ([]byte, error)
}
