package models

import "time"

// Note is a single text note owned by exactly one user.
type Note struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    int        `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"` // nil until the first update
}

// NotePatch is a partial update. A nil field is left untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}
