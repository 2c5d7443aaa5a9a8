package models

import "time"

// Note is a single note row owned by exactly one user. Category is a free
// tag and may be NULL. CreatedAt is set once; UpdatedAt is refreshed on
// every successful mutation.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  *string   `json:"category"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch carries a partial note update. Nil fields are left unchanged.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
}

// NotePage is the paginated listing envelope. PreviousPage and NextPage are
// absent (null) on the first and last page respectively. Total counts all
// matches before pagination.
type NotePage struct {
	Items        []*Note `json:"items"`
	Total        int64   `json:"total"`
	TotalPages   int     `json:"total_pages"`
	Page         int     `json:"page"`
	PreviousPage *int    `json:"previous_page"`
	NextPage     *int    `json:"next_page"`
}
