package notes

import (
	"context"

	"github.com/dsmirnovs/notekeeper/internal/server/models"
)

// ListQuery is the storage-level listing request. Search and Category are
// skipped when empty. SortBy names one of the allow-listed columns; unknown
// values fall back to the default ordering. Limit/Offset are assumed to be
// already clamped by the service.
type ListQuery struct {
	Search   string
	Category string
	SortBy   string
	Desc     bool
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Get(ctx context.Context, userID string, noteID string) (*models.Note, error)
	Update(ctx context.Context, userID string, noteID string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, userID string, noteID string) error
	List(ctx context.Context, userID string, q ListQuery) ([]*models.Note, int64, error)
}
