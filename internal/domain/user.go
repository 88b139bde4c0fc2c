package domain

import "time"

// User is the local mirror of an externally-authenticated account. Login
// and sessions live in the identity provider; this row exists so the
// reminder dispatcher can resolve user IDs to email addresses.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
