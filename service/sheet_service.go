package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"event-cards-me/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// SheetService turns rendered guest cards into a printable sheet. The
// composition itself happens in CardService; this layer only lays finished
// cards out on pages and prints them through headless Chrome.
type SheetService struct {
	guestRepo   repository.GuestRepositoryInterface
	cardService *CardService
	baseURL     string // Base URL for the render endpoint (e.g., "http://localhost:8080")
}

// NewSheetService creates a new SheetService
func NewSheetService(guestRepo repository.GuestRepositoryInterface, cardService *CardService, baseURL string) *SheetService {
	return &SheetService{
		guestRepo:   guestRepo,
		cardService: cardService,
		baseURL:     baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sheetCard is one card on the printable sheet
type sheetCard struct {
	GuestName  string
	CardBase64 string
}

// RenderSheetHTML renders the printable sheet for an event as HTML with the
// card images embedded as base64
func (s *SheetService) RenderSheetHTML(ctx context.Context, eventID, cardTypeID int) (string, error) {
	guests, err := s.guestRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to list guests: %w", err)
	}

	var cards []sheetCard
	for _, guest := range guests {
		cardPNG, err := s.cardService.RenderGuestCard(ctx, eventID, guest.ID, cardTypeID)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to render card for guest %d: %v", guest.ID, err)
			continue
		}
		cards = append(cards, sheetCard{
			GuestName:  guest.DisplayName(),
			CardBase64: base64.StdEncoding.EncodeToString(cardPNG),
		})
	}

	templatePath := filepath.Join("templates", "sheet.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{
		"EventID": eventID,
		"Cards":   cards,
	}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GeneratePDF prints the event's card sheet to PDF using chromedp
func (s *SheetService) GeneratePDF(ctx context.Context, eventID, cardTypeID int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
			chromedp.Flag("enable-print-preview", true),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	} else {
		// Let chromedp auto-detect (may fail in containers)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
			chromedp.Flag("enable-print-preview", true),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	if err := chromedp.Run(chromedpCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.Enable().Do(ctx)
	})); err != nil {
		log.Printf("⚠️  Warning: failed to enable page events: %v", err)
	}

	renderURL := fmt.Sprintf("%s/admin/events/%d/cards/render?cardTypeId=%d", s.baseURL, eventID, cardTypeID)

	var pdfBuf []byte

	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 5000),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		// Wait for the embedded card images to finish loading
		chromedp.Evaluate(`
			(function() {
				return Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
					return new Promise((resolve) => {
						if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
							resolve();
							return;
						}
						const timeout = setTimeout(() => resolve(), 5000);
						img.onload = () => { clearTimeout(timeout); resolve(); };
						img.onerror = () => { clearTimeout(timeout); resolve(); };
					});
				}));
			})();
		`, nil),
		chromedp.Sleep(time.Second), // Final wait for layout
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait; page breaks come from CSS page-break-after
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
