package models

import "time"

// User is the single administrative account. Only a salt and an argon2id
// verifier are stored, never the password.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
