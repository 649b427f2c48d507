package payloads

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("payloads: not found")
	ErrInvalidFormat  = errors.New("payloads: invalid payload format")
	ErrPersistFailure = errors.New("payloads: persist failure")
)

// Store persists chart payload envelopes keyed by ID. Save mints an ID when
// given an empty one and returns the effective ID; DeleteOlderThan removes
// envelopes last saved before the cutoff and reports how many went away.
type Store interface {
	Load(ctx context.Context, id string) (Payload, error)
	Save(ctx context.Context, id string, payload Payload) (string, error)
	Delete(ctx context.Context, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
