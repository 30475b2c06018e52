package controller

import (
	"context"
	"fmt"
	"net/http"

	"event-cards-me/service"
)

// SheetController handles HTTP requests for printable card sheets
type SheetController struct {
	sheetService *service.SheetService
}

// NewSheetController creates a new SheetController
func NewSheetController(sheetService *service.SheetService) *SheetController {
	return &SheetController{
		sheetService: sheetService,
	}
}

// RenderHTML handles GET /admin/events/:id/cards/render
// Returns the HTML sheet of all guest cards (used by chromedp for PDF generation)
func (c *SheetController) RenderHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := parseIDFromPath(r.URL.Path, "/admin/events/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := c.sheetService.RenderSheetHTML(context.Background(), eventID, cardTypeIDFromQuery(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to render sheet: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// PDF handles GET /admin/events/:id/cards/sheet.pdf
// Prints the card sheet to PDF via headless Chrome
func (c *SheetController) PDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID, err := parseIDFromPath(r.URL.Path, "/admin/events/")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pdf, err := c.sheetService.GeneratePDF(context.Background(), eventID, cardTypeIDFromQuery(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=event-%d-cards.pdf", eventID))
	w.Write(pdf)
}
