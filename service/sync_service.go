package service

import (
	"context"
	"fmt"
	"log"

	"event-cards-me/repository"
	"event-cards-me/utils"
)

// SyncService pulls card designs from the shared Google Drive folder into
// the design library. Designs go through the same validation chain as a
// direct upload; rejected ones are reported, not stored.
type SyncService struct {
	driveService    DriveServiceInterface
	templateService *TemplateService
	repository      repository.TemplateRepositoryInterface
}

// NewSyncService creates a new SyncService
func NewSyncService(driveService DriveServiceInterface, templateService *TemplateService, repo repository.TemplateRepositoryInterface) *SyncService {
	return &SyncService{
		driveService:    driveService,
		templateService: templateService,
		repository:      repo,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncDesigns synchronizes designs from Google Drive into the library.
// inserted = new rows created, skipped = already present (by drive_file_id),
// rejected = failed validation (diagnostics collected in errors).
func (s *SyncService) SyncDesigns(ctx context.Context, folderID string) (total, inserted, skipped, rejected int, errors []string, err error) {
	if s.driveService == nil {
		return 0, 0, 0, 0, nil, fmt.Errorf("drive service is not configured: set GOOGLE_APPLICATION_CREDENTIALS")
	}

	log.Printf("🔄 Starting design sync for folder: %s", folderID)

	designs, err := s.driveService.ListDesigns(folderID)
	if err != nil {
		return 0, 0, 0, 0, nil, fmt.Errorf("failed to list designs from Drive: %w", err)
	}

	total = len(designs)
	log.Printf("📦 Processing %d designs from Google Drive", total)

	for _, design := range designs {
		exists, err := s.repository.ExistsByDriveFileID(ctx, design.DriveFileID)
		if err != nil {
			return total, inserted, skipped, rejected, errors, err
		}
		if exists {
			skipped++
			continue
		}

		data, err := s.driveService.DownloadImage(design.DriveFileID)
		if err != nil {
			rejected++
			errors = append(errors, fmt.Sprintf("%s: %v", design.Name, err))
			continue
		}

		width, height, err := s.templateService.ValidateUpload(utils.SniffMIME(data), data)
		if err != nil {
			rejected++
			errors = append(errors, fmt.Sprintf("%s: %v", design.Name, err))
			log.Printf("⚠️  Design %s rejected: %v", design.Name, err)
			continue
		}

		if err := s.repository.InsertDesign(ctx, &design, data, width, height); err != nil {
			return total, inserted, skipped, rejected, errors, err
		}
		inserted++
	}

	log.Printf("✓ Design sync complete: %d total, %d inserted, %d skipped, %d rejected", total, inserted, skipped, rejected)
	return total, inserted, skipped, rejected, errors, nil
}
