package entity

import (
	"time"
)

// Member is the aggregate root for the account domain.
// Email is the natural key and is unique across the store.
// Password holds the encoded credential produced by the credential encoder;
// it is opaque to every layer above the encoder and must never be logged.
type Member struct {
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}
