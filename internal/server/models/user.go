// Package models defines server-side records persisted in the metadata store.
package models

import "time"

// User is a registered account. Usernames are case-sensitive and unique.
type User struct {
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
