package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no saved value.
var ErrNotFound = errors.New("not found")

// QueryOpts configures history queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	StageID string // only this stage when non-empty
}

// KVRepo stores the saved game as string values under fixed keys.
type KVRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// CombatRecord is one finished combat.
type CombatRecord struct {
	ID         string
	Sequence   int64
	Timestamp  time.Time
	StageID    string
	StageName  string
	Outcome    string
	ScoreDelta int
	TotalScore int
	HPAfter    int
}

// HistoryRepo is the append-only log of finished combats.
type HistoryRepo interface {
	// AppendCombat records rec. ID, Sequence and Timestamp are filled in
	// when zero.
	AppendCombat(ctx context.Context, rec CombatRecord) error

	// RecentCombats returns records newest first.
	RecentCombats(ctx context.Context, opts QueryOpts) ([]CombatRecord, error)

	// ClearCombats deletes every record.
	ClearCombats(ctx context.Context) error
}
