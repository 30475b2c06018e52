package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"event-cards-me/db"
	"event-cards-me/models"
)

// TemplateRepository handles database operations for card templates and the
// synced design library
// Implements TemplateRepositoryInterface
type TemplateRepository struct{}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{}
}

// Ensure TemplateRepository implements TemplateRepositoryInterface
var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)

// GetByEvent returns the uploaded template of an event, image bytes included
func (r *TemplateRepository) GetByEvent(ctx context.Context, eventID int) (*models.Template, error) {
	query := `
		SELECT event_id, image, mime_type, width, height, updated_at
		FROM templates
		WHERE event_id = $1
	`

	var tpl models.Template
	err := db.DB.QueryRowContext(ctx, query, eventID).Scan(
		&tpl.EventID, &tpl.Image, &tpl.MIMEType, &tpl.Width, &tpl.Height, &tpl.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get template for event %d: %w", eventID, err)
	}
	return &tpl, nil
}

// Upsert stores a validated template, replacing any previous one for the
// event. Dimensions are the ones decoded during validation.
func (r *TemplateRepository) Upsert(ctx context.Context, tpl *models.Template) error {
	query := `
		INSERT INTO templates (event_id, image, mime_type, width, height, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO UPDATE
		SET image = EXCLUDED.image,
		    mime_type = EXCLUDED.mime_type,
		    width = EXCLUDED.width,
		    height = EXCLUDED.height,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := db.DB.ExecContext(ctx, query,
		tpl.EventID, tpl.Image, tpl.MIMEType, tpl.Width, tpl.Height, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template for event %d: %w", tpl.EventID, err)
	}

	log.Printf("💾 Template saved for event %d (%dx%d)", tpl.EventID, tpl.Width, tpl.Height)
	return nil
}

// ExistsByDriveFileID checks if a synced design already exists
func (r *TemplateRepository) ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM design_library WHERE drive_file_id = $1)`
	if err := db.DB.QueryRowContext(ctx, query, driveFileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// InsertDesign adds a design fetched from the Drive library. Only designs
// that passed dimension validation reach this point.
func (r *TemplateRepository) InsertDesign(ctx context.Context, design *models.Design, image []byte, width, height int) error {
	query := `
		INSERT INTO design_library (drive_file_id, name, image_url, image, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (drive_file_id) DO NOTHING
	`

	_, err := db.DB.ExecContext(ctx, query,
		design.DriveFileID, design.Name, design.ImageURL, image, width, height, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert design %s: %w", design.DriveFileID, err)
	}

	log.Printf("💾 Design %s (%s) added to library", design.Name, design.DriveFileID)
	return nil
}
