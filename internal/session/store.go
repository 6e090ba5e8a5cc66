package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session identifier is unknown.
var ErrNotFound = errors.New("session not found")

// ErrExpired is returned when a session exists but its expiry has passed.
// Callers that only care about liveness can treat it the same as ErrNotFound.
var ErrExpired = errors.New("session expired")

// Session holds the per-diagnosis state tracked between HTTP calls.
// Data is an open payload; the diagnosis controller owns its keys.
type Session struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Data      map[string]any `json:"data"`
}

// Store defines the behaviour required by the diagnosis controller.
type Store interface {
	// Create allocates a new session with a fresh identifier and expiry.
	Create(ctx context.Context) (*Session, error)

	// Get retrieves a live session by ID. Returns ErrNotFound for unknown
	// identifiers and ErrExpired for sessions past their expiry.
	Get(ctx context.Context, id string) (*Session, error)

	// Update shallow-merges partial into the session payload and refreshes
	// the update timestamp. Expired sessions behave as unknown.
	Update(ctx context.Context, id string, partial map[string]any) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Sweep evicts every expired session and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
}
