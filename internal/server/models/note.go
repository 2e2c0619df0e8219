package models

import "time"

// Note belongs to exactly one user at a time. UserID decides visibility:
// every read and mutation is filtered by it.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
