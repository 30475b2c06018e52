package repository

import (
	"context"

	"event-cards-me/models"
	"event-cards-me/render"
)

// CardTypeRepositoryInterface defines the contract for card type operations
type CardTypeRepositoryInterface interface {
	GetByID(ctx context.Context, id int) (*models.CardType, error)
	UpdatePosition(ctx context.Context, id int, pos render.Position) error
}

// GuestRepositoryInterface defines the contract for guest operations
type GuestRepositoryInterface interface {
	ListByEvent(ctx context.Context, eventID int) ([]models.Guest, error)
	GetByID(ctx context.Context, id int) (*models.Guest, error)
}

// TemplateRepositoryInterface defines the contract for template operations
type TemplateRepositoryInterface interface {
	GetByEvent(ctx context.Context, eventID int) (*models.Template, error)
	Upsert(ctx context.Context, tpl *models.Template) error
	ExistsByDriveFileID(ctx context.Context, driveFileID string) (bool, error)
	InsertDesign(ctx context.Context, design *models.Design, image []byte, width, height int) error
}
