package history

import "context"

// NullStore discards every visit. Use it when history recording is disabled
// but callers still expect a [Store].
type NullStore struct{}

// NewNullStore creates a store that records nothing.
func NewNullStore() *NullStore { return &NullStore{} }

// Append discards the visit.
func (NullStore) Append(ctx context.Context, v Visit) error { return nil }

// Recent always returns an empty slice.
func (NullStore) Recent(ctx context.Context, sessionID string, n int) ([]Visit, error) {
	return nil, nil
}

// Clear does nothing.
func (NullStore) Clear(ctx context.Context, sessionID string) error { return nil }

// Close does nothing.
func (NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
