package service

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"time"

	"event-cards-me/models"
	"event-cards-me/render"
	"event-cards-me/repository"
	"event-cards-me/utils"
)

// renderTimeout caps one full composite: template decode, readiness poll and
// QR resolution included
const renderTimeout = 45 * time.Second

// CardService produces the final composited guest card. It owns the
// orchestration only; the pixel work lives in the render package.
type CardService struct {
	guestRepo    repository.GuestRepositoryInterface
	cardTypeRepo repository.CardTypeRepositoryInterface
	templateRepo repository.TemplateRepositoryInterface
	qrService    *QRService
	fetch        render.Fetcher
}

// NewCardService creates a new CardService
func NewCardService(
	guestRepo repository.GuestRepositoryInterface,
	cardTypeRepo repository.CardTypeRepositoryInterface,
	templateRepo repository.TemplateRepositoryInterface,
	qrService *QRService,
) *CardService {
	return &CardService{
		guestRepo:    guestRepo,
		cardTypeRepo: cardTypeRepo,
		templateRepo: templateRepo,
		qrService:    qrService,
		fetch:        utils.FetchBytes,
	}
}

// position resolves the card type's anchors. cardTypeID 0 means the event
// has no saved layout yet; the defaults apply.
func (s *CardService) position(ctx context.Context, cardTypeID int) (render.Position, error) {
	if cardTypeID == 0 {
		return render.DefaultPosition(), nil
	}
	ct, err := s.cardTypeRepo.GetByID(ctx, cardTypeID)
	if err != nil {
		return render.Position{}, err
	}
	return ct.Position, nil
}

// RenderGuestCard composites one guest's card and returns it as PNG bytes.
// A missing or failed QR never aborts the render (it becomes a placeholder);
// a missing or undecodable template does.
func (s *CardService) RenderGuestCard(ctx context.Context, eventID, guestID, cardTypeID int) ([]byte, error) {
	tpl, err := s.templateRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("event %d has no card template: %w", eventID, err)
	}

	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if guest.EventID != eventID {
		return nil, fmt.Errorf("guest %d does not belong to event %d", guestID, eventID)
	}

	pos, err := s.position(ctx, cardTypeID)
	if err != nil {
		return nil, err
	}

	return s.renderCard(ctx, tpl, guest, pos)
}

// renderCard drives one session to a terminal composite
func (s *CardService) renderCard(ctx context.Context, tpl *models.Template, guest *models.Guest, pos render.Position) ([]byte, error) {
	session := render.NewSession(s.fetch)
	defer session.Close()

	session.SetPosition(pos)
	session.SetTemplate(tpl.Image)
	session.SetGuest(guest.DisplayName(), guest.CardClass, s.qrService.ResolveSource(guest))

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	surface, err := session.AwaitRender(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to render card for guest %d: %w", guest.ID, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, surface); err != nil {
		return nil, fmt.Errorf("failed to encode card PNG: %w", err)
	}

	log.Printf("✓ Card rendered for guest %d (%s)", guest.ID, guest.FullName)
	return buf.Bytes(), nil
}

// RenderGuestCardCached returns the card from the disk cache when possible.
// size is "full" (PNG) or "preview" (downscaled JPEG).
func (s *CardService) RenderGuestCardCached(ctx context.Context, eventID, guestID, cardTypeID int, size string) ([]byte, string, error) {
	if size != "preview" {
		size = "full"
	}

	cachePath := GetCachePath(eventID, guestID, size)
	if CacheExists(cachePath) {
		data, err := ReadFromCache(cachePath)
		if err == nil {
			return data, contentTypeFor(size), nil
		}
		log.Printf("⚠️  Failed to read cached card, re-rendering: %v", err)
	}

	cardPNG, err := s.RenderGuestCard(ctx, eventID, guestID, cardTypeID)
	if err != nil {
		return nil, "", err
	}

	data := cardPNG
	if size == "preview" {
		data, err = PreviewImage(cardPNG)
		if err != nil {
			return nil, "", err
		}
	}

	if err := SaveToCache(cachePath, data); err != nil {
		log.Printf("⚠️  Failed to cache rendered card: %v", err)
	}
	return data, contentTypeFor(size), nil
}

func contentTypeFor(size string) string {
	if size == "preview" {
		return "image/jpeg"
	}
	return "image/png"
}
