package models

import "time"

// Session binds the hash of a client held token to a staff account.
type Session struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Renewed is set when validation pushed ExpiresAt forward.
	Renewed bool `db:"-" json:"-"`
}

// SessionWithStaff is a session row joined with its owner.
type SessionWithStaff struct {
	Session Session `db:"session"`
	Staff   Staff   `db:"staff"`
}
