package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"event-cards-me/repository"
)

// BatchService renders every guest card of an event to local PNG files for
// printing
// Implements BatchServiceInterface
type BatchService struct {
	guestRepo   repository.GuestRepositoryInterface
	cardService *CardService
}

// NewBatchService creates a new BatchService instance
func NewBatchService(guestRepo repository.GuestRepositoryInterface, cardService *CardService) *BatchService {
	return &BatchService{
		guestRepo:   guestRepo,
		cardService: cardService,
	}
}

// Ensure BatchService implements BatchServiceInterface
var _ BatchServiceInterface = (*BatchService)(nil)

// getExportDir returns the export directory path outside the project
func getExportDir(eventID int) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	exportDir := filepath.Join(homeDir, "Downloads", "event-cards", fmt.Sprintf("event-%d", eventID))
	return exportDir, nil
}

// safeFileName turns a guest name into a filesystem-friendly file name
func safeFileName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.NewReplacer(" ", "-", "/", "-", "\\", "-").Replace(name)
	return name
}

// ExportEventCards renders all cards of an event and writes them as PNGs.
// Returns: total guests, exported count, and per-guest errors. A failing
// guest never aborts the batch.
func (bs *BatchService) ExportEventCards(ctx context.Context, eventID, cardTypeID int) (int, int, []string, error) {
	log.Printf("📥 Starting card export for event: %d", eventID)

	exportDir, err := getExportDir(eventID)
	if err != nil {
		return 0, 0, nil, err
	}
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return 0, 0, nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	guests, err := bs.guestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to list guests: %w", err)
	}

	log.Printf("📦 Found %d guests to export", len(guests))

	exported := 0
	var errors []string

	usedFileNames := make(map[string]bool)
	for _, guest := range guests {
		cardPNG, err := bs.cardService.RenderGuestCard(ctx, eventID, guest.ID, cardTypeID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("guest %d (%s): %v", guest.ID, guest.FullName, err))
			continue
		}

		fileName := safeFileName(guest.FullName)
		if fileName == "" || usedFileNames[fileName] {
			fileName = fmt.Sprintf("%s-%d", fileName, guest.ID)
		}
		usedFileNames[fileName] = true

		outPath := filepath.Join(exportDir, fileName+".png")
		if err := os.WriteFile(outPath, cardPNG, 0644); err != nil {
			errors = append(errors, fmt.Sprintf("guest %d (%s): %v", guest.ID, guest.FullName, err))
			continue
		}
		exported++
	}

	log.Printf("✓ Card export complete: %d/%d exported to %s", exported, len(guests), exportDir)
	return len(guests), exported, errors, nil
}
