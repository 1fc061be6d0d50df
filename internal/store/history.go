package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sequenceCounter hands out a monotonic sequence for combat records so
// ordering survives identical timestamps. The mutex serializes within the
// process; the RETURNING clause makes the increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type historyRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *historyRepo) AppendCombat(ctx context.Context, rec CombatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		rec.Sequence = seq
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO combat_history
		 (id, sequence, timestamp, stage_id, stage_name, outcome, score_delta, total_score, hp_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.Timestamp, rec.StageID, rec.StageName,
		rec.Outcome, rec.ScoreDelta, rec.TotalScore, rec.HPAfter)
	if err != nil {
		return fmt.Errorf("append combat: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentCombats(ctx context.Context, opts QueryOpts) ([]CombatRecord, error) {
	q := `SELECT id, sequence, timestamp, stage_id, stage_name, outcome, score_delta, total_score, hp_after
		FROM combat_history`
	var args []any
	if opts.StageID != "" {
		q += ` WHERE stage_id = ?`
		args = append(args, opts.StageID)
	}
	q += ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query combats: %w", err)
	}
	defer rows.Close()

	var out []CombatRecord
	for rows.Next() {
		var rec CombatRecord
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.StageID, &rec.StageName,
			&rec.Outcome, &rec.ScoreDelta, &rec.TotalScore, &rec.HPAfter); err != nil {
			return nil, fmt.Errorf("scan combat: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *historyRepo) ClearCombats(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM combat_history`); err != nil {
		return fmt.Errorf("clear combats: %w", err)
	}
	return nil
}
