package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"event-cards-me/service"
)

// DesignController handles HTTP requests for the Drive design library
type DesignController struct {
	syncService service.SyncServiceInterface
}

// NewDesignController creates a new DesignController
func NewDesignController(syncService service.SyncServiceInterface) *DesignController {
	return &DesignController{
		syncService: syncService,
	}
}

// Sync handles POST /admin/designs/sync
// Pulls card designs from the configured Google Drive folder into the
// library, validating each one like a direct upload
func (c *DesignController) Sync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	folderID := os.Getenv("TEMPLATE_DRIVE_FOLDER_ID")
	if folderID == "" {
		http.Error(w, "TEMPLATE_DRIVE_FOLDER_ID environment variable is not set", http.StatusInternalServerError)
		return
	}

	log.Printf("📥 Design sync request received for folder: %s", folderID)

	ctx := context.Background()

	total, inserted, skipped, rejected, errors, err := c.syncService.SyncDesigns(ctx, folderID)
	if err != nil {
		log.Printf("❌ Design sync failed: %v", err)
		http.Error(w, fmt.Sprintf("Failed to sync designs: %v", err), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"status":   "success",
		"total":    total,
		"inserted": inserted,
		"skipped":  skipped,
		"rejected": rejected,
		"errors":   errors,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
