package service

import "context"

// SyncServiceInterface defines the contract for design library sync operations
type SyncServiceInterface interface {
	// SyncDesigns synchronizes designs from a Drive folder and returns stats:
	// inserted = new rows created, skipped = already existed (by drive_file_id),
	// rejected = failed MIME/size/dimension validation (diagnostics in errors).
	SyncDesigns(ctx context.Context, folderID string) (total, inserted, skipped, rejected int, errors []string, err error)
}
