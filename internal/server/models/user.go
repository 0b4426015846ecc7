package models

import "time"

// User is a registered account. Name is optional and stays nil when the user
// registered without a display name, which is distinct from an empty string.
// PasswordHash is a bcrypt hash and must never be serialized outward;
// lookups that feed responses leave it empty.
type User struct {
	ID           string
	Name         *string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
