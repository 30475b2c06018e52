package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"event-cards-me/repository"
	"event-cards-me/service"
)

// maxUploadMemory caps in-memory multipart parsing; anything beyond the
// template size ceiling is rejected by the validation chain anyway
const maxUploadMemory = 4 << 20

// TemplateController handles HTTP requests for card templates
type TemplateController struct {
	templateService *service.TemplateService
	repository      repository.TemplateRepositoryInterface
}

// NewTemplateController creates a new TemplateController
func NewTemplateController(templateService *service.TemplateService, repo repository.TemplateRepositoryInterface) *TemplateController {
	return &TemplateController{
		templateService: templateService,
		repository:      repo,
	}
}

// Upload handles POST /admin/events/:id/template
// Accepts a multipart form with a "file" field. Rejections (wrong MIME,
// oversized, wrong dimensions) return the full diagnostic and store nothing.
func (c *TemplateController) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := parseIDFromPath(r.URL.Path, "/admin/events/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, fmt.Sprintf("Invalid multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read upload: %v", err), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	result, err := c.templateService.Upload(ctx, eventID, data, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("❌ Template upload rejected for event %d: %v", eventID, err)
		http.Error(w, fmt.Sprintf("Template rejected: %v", err), http.StatusUnprocessableEntity)
		return
	}

	// New template invalidates every cached render of the event
	if err := service.ClearCache(); err != nil {
		log.Printf("⚠️  Failed to clear card cache: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// Get handles GET /admin/events/:id/template
// Serves the stored template image bytes
func (c *TemplateController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := parseIDFromPath(r.URL.Path, "/admin/events/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	tpl, err := c.repository.GetByEvent(ctx, eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Event has no template: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", tpl.MIMEType)
	w.Write(tpl.Image)
}
