package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsmirnovs/notekeeper/internal/server/models"
	"github.com/dsmirnovs/notekeeper/internal/server/repositories/notes"
	"github.com/dsmirnovs/notekeeper/internal/server/repositories/repomanager"
)

// Pagination bounds for note listings.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// ListParams is the transport-level listing request, before normalization.
type ListParams struct {
	Search   string
	Category string
	SortBy   string
	Desc     bool
	Page     int
	PerPage  int
}

// NoteService owns note CRUD and the composed listing operation. Every
// operation takes the owner id; ownership is enforced inside the repository
// predicates, so a foreign note behaves exactly like a missing one.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService bound to the shared DB handle.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a new note for ownerID. Content defaults to the empty
// string; category may be nil.
func (s *NoteService) Create(ctx context.Context, ownerID string, title string, content string, category *string) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)

	note := &models.Note{
		Title:    title,
		Content:  content,
		Category: category,
		UserID:   ownerID,
	}

	created, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return created, nil
}

// Get returns the note with noteID if it belongs to ownerID.
func (s *NoteService) Get(ctx context.Context, ownerID string, noteID string) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Get(ctx, ownerID, noteID)
}

// Update applies a partial patch to the note and returns the updated row.
func (s *NoteService) Update(ctx context.Context, ownerID string, noteID string, patch models.NotePatch) (*models.Note, error) {
	return s.repomanager.Notes(s.db).Update(ctx, ownerID, noteID, patch)
}

// Delete removes the note with noteID if it belongs to ownerID.
func (s *NoteService) Delete(ctx context.Context, ownerID string, noteID string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, ownerID, noteID)
}

// List runs the composed search/filter/sort/paginate query and wraps the
// result in the page envelope.
//
// Normalization: page is clamped to >= 1, per_page to [1, MaxPerPage]. The
// sort key allow-list lives in the repository; an unknown key silently falls
// back to the default updated_at ordering.
func (s *NoteService) List(ctx context.Context, ownerID string, params ListParams) (*models.NotePage, error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	q := notes.ListQuery{
		Search:   params.Search,
		Category: params.Category,
		SortBy:   params.SortBy,
		Desc:     params.Desc,
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	items, total, err := s.repomanager.Notes(s.db).List(ctx, ownerID, q)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	if items == nil {
		items = []*models.Note{}
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	envelope := &models.NotePage{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
	if page > 1 {
		prev := page - 1
		envelope.PreviousPage = &prev
	}
	if page < totalPages {
		next := page + 1
		envelope.NextPage = &next
	}

	return envelope, nil
}
