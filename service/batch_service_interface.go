package service

import "context"

// BatchServiceInterface defines the contract for batch card export operations
type BatchServiceInterface interface {
	ExportEventCards(ctx context.Context, eventID, cardTypeID int) (int, int, []string, error)
}
