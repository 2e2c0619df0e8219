// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity record. The raw password never reaches this struct;
// only the bcrypt hash is stored.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Name         string
	Phone        string
	CreatedAt    time.Time
}
