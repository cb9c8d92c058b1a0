package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite export database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	total INTEGER NOT NULL,
	distinct_words INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_words (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_words_word ON run_words(word);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes a run and its ranked entries in one transaction,
// replacing any run with the same ID.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, r.ID); err != nil {
		return fmt.Errorf("replace run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs(id, source, total, distinct_words, created_at)
		VALUES(?, ?, ?, ?, ?)`,
		r.ID,
		r.Source,
		r.Total,
		len(r.Entries),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_words(run_id, position, word, count) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range r.Entries {
		if _, err := stmt.ExecContext(ctx, r.ID, i, e.Word, e.Count); err != nil {
			return fmt.Errorf("insert word %q: %w", e.Word, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run and its entries in ranked order.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var (
		r       store.Run
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, total, created_at FROM runs WHERE id=?`, id,
	).Scan(&r.ID, &r.Source, &r.Total, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	if parsed, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
		r.CreatedAt = parsed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, count FROM run_words WHERE run_id=? ORDER BY position`, id)
	if err != nil {
		return store.Run{}, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var e rank.Entry
		if err := rows.Scan(&e.Word, &e.Count); err != nil {
			return store.Run{}, false, err
		}
		r.Entries = append(r.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return store.Run{}, false, err
	}

	return r, true, nil
}

// ListRuns returns run summaries, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	query := `SELECT id, source, total, distinct_words, created_at FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var (
			sum     store.RunSummary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.Source, &sum.Total, &sum.Distinct, &created); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			sum.CreatedAt = parsed
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
