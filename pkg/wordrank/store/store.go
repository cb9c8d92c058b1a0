package store

import (
	"context"
	"time"

	"github.com/cognicore/wordrank/pkg/wordrank/rank"
)

// Store records finished reports. Runs are written once and never fed
// back into counting.
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
}

// Run is one exported report
type Run struct {
	ID        string // ULID
	Source    string
	Total     int
	Entries   []rank.Entry // full ranked sequence, in order
	CreatedAt time.Time
}

// RunSummary is a run without its entries
type RunSummary struct {
	ID        string
	Source    string
	Total     int
	Distinct  int
	CreatedAt time.Time
}
