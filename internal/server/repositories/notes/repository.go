package notes

import (
	"context"

	"github.com/akosarev/notekeeper/internal/server/models"
)

// Repository is the owner-scoped note store. Every method takes the owner id
// explicitly; a note id alone never selects a row.
type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Note, error)
	SearchByTitle(ctx context.Context, ownerID, text string) ([]*models.Note, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	UpdateOwner(ctx context.Context, id, ownerID, newOwnerID string) error
}
