package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"event-cards-me/repository"
	"event-cards-me/service"
)

// GuestController handles HTTP requests for guests
type GuestController struct {
	repository repository.GuestRepositoryInterface
	qrService  *service.QRService
}

// NewGuestController creates a new GuestController
func NewGuestController(repo repository.GuestRepositoryInterface, qrService *service.QRService) *GuestController {
	return &GuestController{
		repository: repo,
		qrService:  qrService,
	}
}

// List handles GET /admin/events/:id/guests
func (c *GuestController) List(w http.ResponseWriter, r *http.Request) {
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

	guests, err := c.repository.ListByEvent(ctx, eventID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list guests: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(guests); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// QR handles GET /admin/guests/:id/qr
// Returns the guest's check-in QR code as PNG. size defaults to 400px.
func (c *GuestController) QR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	guestID, err := parseIDFromPath(r.URL.Path, "/admin/guests/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	size := 400
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		if v, err := strconv.Atoi(sizeStr); err == nil && v > 0 {
			size = v
		}
	}

	ctx := context.Background()

	guest, err := c.repository.GetByID(ctx, guestID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get guest: %v", err), http.StatusNotFound)
		return
	}

	qrPNG, err := c.qrService.GenerateGuestQR(guest, size)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate QR code: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(qrPNG)
}
