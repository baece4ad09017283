package models

import "time"

// Bookmark is a (user, note) pair. The unique constraint on the pair is the
// single source of truth for bookmark state; user and note sides are derived
// by query.
type Bookmark struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	NoteID    int64     `db:"note_id" json:"noteId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
