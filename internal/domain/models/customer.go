package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a roster entry. Phone is the de facto contact key; no
// uniqueness is enforced on it.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
