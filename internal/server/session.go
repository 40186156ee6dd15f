package server

import "github.com/google/uuid"

// NewClientID creates a unique client ID.
func NewClientID() string {
	return uuid.NewString()
}
