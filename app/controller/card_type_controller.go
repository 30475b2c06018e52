package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"event-cards-me/models"
	"event-cards-me/repository"
	"event-cards-me/service"
)

// CardTypeController handles HTTP requests for card types
type CardTypeController struct {
	repository repository.CardTypeRepositoryInterface
}

// NewCardTypeController creates a new CardTypeController
func NewCardTypeController(repo repository.CardTypeRepositoryInterface) *CardTypeController {
	return &CardTypeController{
		repository: repo,
	}
}

// parseIDFromPath extracts a numeric id following the given prefix
func parseIDFromPath(path, prefix string) (int, error) {
	raw := strings.TrimPrefix(path, prefix)
	raw = strings.SplitN(raw, "/", 2)[0]
	if raw == "" {
		return 0, fmt.Errorf("id parameter is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// Get handles GET /admin/card-types/:id
// Returns the card type with its anchor percentages and visibility flags
func (c *CardTypeController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := parseIDFromPath(r.URL.Path, "/admin/card-types/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	cardType, err := c.repository.GetByID(ctx, id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get card type: %v", err), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cardType); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Update handles PUT /admin/card-types/:id
// Saves the edited anchor percentages and visibility flags. This is the
// explicit persist: in-memory edits before this call live only in the editor.
func (c *CardTypeController) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := parseIDFromPath(r.URL.Path, "/admin/card-types/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var updateReq models.CardTypeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	if err := c.repository.UpdatePosition(ctx, id, updateReq.Position); err != nil {
		http.Error(w, fmt.Sprintf("Failed to update card type: %v", err), http.StatusInternalServerError)
		return
	}

	// A layout change invalidates every card rendered with it
	if err := service.ClearCache(); err != nil {
		log.Printf("⚠️  Failed to clear card cache: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"message": "Card type updated successfully",
		"id":      id,
	})
}
