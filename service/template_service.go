package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"event-cards-me/models"
	"event-cards-me/render"
	"event-cards-me/repository"
	"event-cards-me/utils"
)

const (
	// maxTemplateBytes is the upload size ceiling (2 MiB)
	maxTemplateBytes = 2 * 1024 * 1024
)

// allowedMIMETypes is the upload whitelist. Checked before anything touches
// the image bytes.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// TemplateService handles template upload validation and storage. The
// validation chain is fixed: MIME type, then byte size, then decoded
// dimensions against the allowed tiers. Each step short-circuits.
type TemplateService struct {
	repository repository.TemplateRepositoryInterface
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(repo repository.TemplateRepositoryInterface) *TemplateService {
	return &TemplateService{repository: repo}
}

// ValidateUpload runs the full pre-storage validation chain and returns the
// dimensions decoded from the image container itself (the uploader's claim
// is never trusted).
func (s *TemplateService) ValidateUpload(declaredMIME string, data []byte) (int, int, error) {
	if !allowedMIMETypes[declaredMIME] {
		return 0, 0, fmt.Errorf("unsupported file type %q: allowed types are JPEG, PNG, GIF", declaredMIME)
	}
	if detected := utils.SniffMIME(data); !allowedMIMETypes[detected] {
		return 0, 0, fmt.Errorf("file content is %q, which does not match an allowed image type", detected)
	}
	if len(data) > maxTemplateBytes {
		return 0, 0, fmt.Errorf("file is too large: %d bytes (max 2 MiB)", len(data))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image dimensions: %w", err)
	}

	if err := render.ValidateDimensions(cfg.Width, cfg.Height); err != nil {
		return 0, 0, err
	}

	return cfg.Width, cfg.Height, nil
}

// Upload validates and stores a new template for an event. Nothing is
// persisted when validation fails; the caller gets the full diagnostic.
func (s *TemplateService) Upload(ctx context.Context, eventID int, data []byte, declaredMIME string) (*models.TemplateUploadResult, error) {
	width, height, err := s.ValidateUpload(declaredMIME, data)
	if err != nil {
		return nil, err
	}

	tpl := &models.Template{
		EventID:  eventID,
		Image:    data,
		MIMEType: declaredMIME,
		Width:    width,
		Height:   height,
	}
	if err := s.repository.Upsert(ctx, tpl); err != nil {
		return nil, err
	}

	log.Printf("✓ Template accepted for event %d: %dx%d, %d bytes", eventID, width, height, len(data))

	return &models.TemplateUploadResult{
		EventID: eventID,
		Width:   width,
		Height:  height,
		Path:    fmt.Sprintf("/admin/events/%d/template", eventID),
	}, nil
}
