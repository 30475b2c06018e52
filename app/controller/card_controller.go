package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"event-cards-me/service"
)

// CardController handles HTTP requests for composited guest cards
type CardController struct {
	cardService  *service.CardService
	batchService service.BatchServiceInterface
}

// NewCardController creates a new CardController
func NewCardController(cardService *service.CardService, batchService service.BatchServiceInterface) *CardController {
	return &CardController{
		cardService:  cardService,
		batchService: batchService,
	}
}

// parseCardPath extracts event and guest ids from
// /admin/events/:eventId/guests/:guestId/card
func parseCardPath(path string) (int, int, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// admin events :eventId guests :guestId card
	if len(parts) != 6 {
		return 0, 0, fmt.Errorf("invalid card path")
	}
	eventID, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid event id %q", parts[2])
	}
	guestID, err := strconv.Atoi(parts[4])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid guest id %q", parts[4])
	}
	return eventID, guestID, nil
}

func cardTypeIDFromQuery(r *http.Request) int {
	if raw := r.URL.Query().Get("cardTypeId"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return 0
}

// Render handles GET /admin/events/:eventId/guests/:guestId/card
// Composites the guest's card and returns it as an image. Query params:
// cardTypeId selects the saved layout, size=preview returns the downscaled
// editor preview instead of the full print surface.
func (c *CardController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, guestID, err := parseCardPath(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	data, contentType, err := c.cardService.RenderGuestCardCached(
		ctx, eventID, guestID, cardTypeIDFromQuery(r), r.URL.Query().Get("size"))
	if err != nil {
		log.Printf("❌ Card render failed for guest %d: %v", guestID, err)
		http.Error(w, fmt.Sprintf("Failed to render card: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// Export handles POST /admin/events/:eventId/cards/export
// Renders and saves every guest card of the event as PNG
func (c *CardController) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := parseIDFromPath(r.URL.Path, "/admin/events/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	total, exported, errors, err := c.batchService.ExportEventCards(ctx, eventID, cardTypeIDFromQuery(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to export cards: %v", err), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"status":   "success",
		"total":    total,
		"exported": exported,
		"failed":   len(errors),
		"errors":   errors,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
