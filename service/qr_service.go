package service

import (
	"bytes"
	"fmt"
	"image/png"
	"log"

	qrcode "github.com/skip2/go-qrcode"

	"event-cards-me/models"
	"event-cards-me/render"
	"event-cards-me/utils"
)

// QRService generates guest QR codes and resolves the QR source used during
// composition
type QRService struct {
	// baseURL prefixes stored relative QR paths, e.g. "https://cards.example.com"
	baseURL string
}

// NewQRService creates a new QRService
func NewQRService(baseURL string) *QRService {
	return &QRService{baseURL: baseURL}
}

// GenerateGuestQR returns PNG bytes of the check-in QR code for a guest
func (s *QRService) GenerateGuestQR(guest *models.Guest, size int) ([]byte, error) {
	payload := fmt.Sprintf("event:%d;guest:%d", guest.EventID, guest.ID)

	data, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code for guest %d: %w", guest.ID, err)
	}
	// validate the encoder output decodes
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("generated QR code is not a valid PNG: %w", err)
	}
	return data, nil
}

// ResolveSource evaluates the guest's QR state, in order: inline encoded
// payload, then a URL built from the configured base and the stored relative
// path, then no source at all. The returned zero source means "no QR
// available", which composition renders as the informational placeholder.
// An inline payload that is not valid base64 is kept as raw bytes so the
// pipeline surfaces it as a load failure (error placeholder), not as absent.
func (s *QRService) ResolveSource(guest *models.Guest) render.ImageSource {
	if guest.QRImage != "" {
		data, err := utils.DecodeBase64Image(guest.QRImage)
		if err != nil {
			log.Printf("⚠️  Guest %d has an undecodable inline QR payload: %v", guest.ID, err)
			return render.ImageSource{Inline: []byte(guest.QRImage)}
		}
		return render.ImageSource{Inline: data}
	}
	if guest.QRPath != "" {
		return render.ImageSource{URL: utils.JoinURL(s.baseURL, guest.QRPath)}
	}
	return render.ImageSource{}
}
