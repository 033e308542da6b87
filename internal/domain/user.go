package domain

import "time"

// User represents a registered customer. Credential storage and verification
// are delegated to an external identity collaborator; only the profile lives
// here.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
