package models

import "event-cards-me/render"

// CardType represents a card class configuration for an event: where the
// overlay elements sit on the template and which of them are visible
type CardType struct {
	ID       int             `json:"id"`
	EventID  int             `json:"eventId"`
	Name     string          `json:"name"`
	Position render.Position `json:"position"`
}

// CardTypeUpdateRequest is the payload for saving edited positions
type CardTypeUpdateRequest struct {
	Position render.Position `json:"position"`
}
