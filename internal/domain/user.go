package domain

import "time"

// UsernameMaxLength is the longest username accepted at registration.
const UsernameMaxLength = 150

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
