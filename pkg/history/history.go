// Package history provides pluggable stores for navigation history.
//
// Every in-page transition the router performs can be recorded as a [Visit],
// keyed by a session ID. Stores implement the [Store] interface with backends
// for different deployments:
//   - memory: in-process storage for development and testing
//   - file: JSON files under a directory, for single-user CLI sessions
//   - redis: capped per-session lists with TTL, for multi-instance servers
//   - mongo: durable storage with a per-session cap, for analytics workloads
//
// # Usage
//
// Create a store and hand it to the router:
//
//	store := history.NewMemoryStore(100)
//	r, err := router.New(tree,
//	    router.WithOrigin("https://myapp.com"),
//	    router.WithRecorder(store, sessionID),
//	)
//
// Read a session's trail back:
//
//	visits, err := store.Recent(ctx, sessionID, 20)
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Visit is one recorded in-page transition.
type Visit struct {
	ID        string    `json:"id" bson:"_id"`
	SessionID string    `json:"session_id" bson:"session_id"`
	Path      string    `json:"path" bson:"path"`
	RouteID   string    `json:"route_id" bson:"route_id"`
	At        time.Time `json:"at" bson:"at"`
}

// NewVisit creates a visit with a fresh UUID and the current time.
func NewVisit(sessionID, path, routeID string) Visit {
	return Visit{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Path:      path,
		RouteID:   routeID,
		At:        time.Now().UTC(),
	}
}

// Store is the interface for history storage backends.
//
// Implementations cap the number of retained visits per session; older visits
// are evicted silently. All methods respect context cancellation.
type Store interface {
	// Append records a visit.
	Append(ctx context.Context, v Visit) error

	// Recent returns up to n visits for the session, newest first.
	// A session with no visits yields an empty slice, not an error.
	Recent(ctx context.Context, sessionID string, n int) ([]Visit, error)

	// Clear removes all visits for the session.
	Clear(ctx context.Context, sessionID string) error

	// Close releases backend resources.
	Close() error
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
