package domain

import (
	"errors"
	"time"
)

var ErrLabNotFound = errors.New("lab not found")
var ErrLabExists = errors.New("lab already exists")

// Lab is a user-owned grouping for agents.
type Lab struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
