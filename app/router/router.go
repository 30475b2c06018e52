package router

import (
	"net/http"
	"strings"

	"event-cards-me/app/controller"
)

type Controllers struct {
	CardType *controller.CardTypeController
	Guest    *controller.GuestController
	Template *controller.TemplateController
	Card     *controller.CardController
	Sheet    *controller.SheetController
	Design   *controller.DesignController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Card type by id - handles both GET (get) and PUT (save positions)
	http.HandleFunc("/admin/card-types/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			controllers.CardType.Get(w, r)
		} else if r.Method == http.MethodPut {
			controllers.CardType.Update(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Event-scoped routes
	http.HandleFunc("/admin/events/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/events/")

		// Printable sheet routes (must be before the generic card route)
		if strings.HasSuffix(path, "/cards/render") {
			controllers.Sheet.RenderHTML(w, r)
			return
		}
		if strings.HasSuffix(path, "/cards/sheet.pdf") {
			controllers.Sheet.PDF(w, r)
			return
		}
		if strings.HasSuffix(path, "/cards/export") {
			controllers.Card.Export(w, r)
			return
		}

		// Composited card for one guest:
		// GET /admin/events/:eventId/guests/:guestId/card
		if strings.HasSuffix(path, "/card") && strings.Contains(path, "/guests/") {
			controllers.Card.Render(w, r)
			return
		}

		// Guest list: GET /admin/events/:id/guests
		if strings.HasSuffix(path, "/guests") {
			controllers.Guest.List(w, r)
			return
		}

		// Template: POST uploads, GET serves the stored image
		if strings.HasSuffix(path, "/template") {
			if r.Method == http.MethodPost {
				controllers.Template.Upload(w, r)
			} else {
				controllers.Template.Get(w, r)
			}
			return
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Guest QR code: GET /admin/guests/:id/qr
	http.HandleFunc("/admin/guests/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/qr") {
			controllers.Guest.QR(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Design library sync from Google Drive
	http.HandleFunc("/admin/designs/sync", controllers.Design.Sync)
}
