package repository

import (
	"context"
	"database/sql"
	"fmt"

	"event-cards-me/db"
	"event-cards-me/models"
)

// GuestRepository handles database operations for guests
// Implements GuestRepositoryInterface
type GuestRepository struct{}

// NewGuestRepository creates a new GuestRepository
func NewGuestRepository() *GuestRepository {
	return &GuestRepository{}
}

// Ensure GuestRepository implements GuestRepositoryInterface
var _ GuestRepositoryInterface = (*GuestRepository)(nil)

func scanGuest(scan func(dest ...interface{}) error) (*models.Guest, error) {
	var g models.Guest
	var title, cardClass, qrImage, qrPath sql.NullString

	if err := scan(&g.ID, &g.EventID, &g.FullName, &title, &cardClass, &qrImage, &qrPath); err != nil {
		return nil, err
	}

	g.Title = title.String
	g.CardClass = cardClass.String
	g.QRImage = qrImage.String
	g.QRPath = qrPath.String
	return &g, nil
}

// ListByEvent returns all guests of an event ordered by name
func (r *GuestRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Guest, error) {
	query := `
		SELECT id, event_id, full_name, title, card_class, qr_image, qr_path
		FROM guests
		WHERE event_id = $1
		ORDER BY full_name
	`

	rows, err := db.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		g, err := scanGuest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guests: %w", err)
	}

	return guests, nil
}

// GetByID returns one guest
func (r *GuestRepository) GetByID(ctx context.Context, id int) (*models.Guest, error) {
	query := `
		SELECT id, event_id, full_name, title, card_class, qr_image, qr_path
		FROM guests
		WHERE id = $1
	`

	g, err := scanGuest(db.DB.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest %d: %w", id, err)
	}
	return g, nil
}
