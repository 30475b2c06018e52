package repository

import (
	"context"
	"fmt"
	"log"

	"event-cards-me/db"
	"event-cards-me/models"
	"event-cards-me/render"
)

// CardTypeRepository handles database operations for card types
// Implements CardTypeRepositoryInterface
type CardTypeRepository struct{}

// NewCardTypeRepository creates a new CardTypeRepository
func NewCardTypeRepository() *CardTypeRepository {
	return &CardTypeRepository{}
}

// Ensure CardTypeRepository implements CardTypeRepositoryInterface
var _ CardTypeRepositoryInterface = (*CardTypeRepository)(nil)

// GetByID returns a card type with its anchor percentages and visibility
// flags. Stored coordinates are clamped on load so stale out-of-range rows
// can never leak into pixel math.
func (r *CardTypeRepository) GetByID(ctx context.Context, id int) (*models.CardType, error) {
	query := `
		SELECT id, event_id, name,
		       name_x, name_y, qr_x, qr_y, card_class_x, card_class_y,
		       show_guest_name, show_card_class
		FROM card_types
		WHERE id = $1
	`

	var ct models.CardType
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&ct.ID, &ct.EventID, &ct.Name,
		&ct.Position.NameX, &ct.Position.NameY,
		&ct.Position.QRX, &ct.Position.QRY,
		&ct.Position.CardClassX, &ct.Position.CardClassY,
		&ct.Position.ShowGuestName, &ct.Position.ShowCardClass,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get card type %d: %w", id, err)
	}

	ct.Position = ct.Position.Clamp()
	return &ct, nil
}

// UpdatePosition persists the edited anchor percentages and visibility
// flags. This is the explicit save: it becomes the source of truth for
// subsequent sessions (last write wins).
func (r *CardTypeRepository) UpdatePosition(ctx context.Context, id int, pos render.Position) error {
	pos = pos.Clamp()

	query := `
		UPDATE card_types
		SET name_x = $1, name_y = $2,
		    qr_x = $3, qr_y = $4,
		    card_class_x = $5, card_class_y = $6,
		    show_guest_name = $7, show_card_class = $8,
		    updated_at = NOW()
		WHERE id = $9
	`

	result, err := db.DB.ExecContext(ctx, query,
		pos.NameX, pos.NameY,
		pos.QRX, pos.QRY,
		pos.CardClassX, pos.CardClassY,
		pos.ShowGuestName, pos.ShowCardClass,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card type %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("card type %d not found", id)
	}

	log.Printf("💾 Card type %d positions saved", id)
	return nil
}
