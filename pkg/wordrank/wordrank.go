package wordrank

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordrank/pkg/wordrank/counts"
	"github.com/cognicore/wordrank/pkg/wordrank/ingest"
	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/store"
)

// Engine runs the word ranking pipeline over text sources
type Engine struct {
	pipeline *ingest.Pipeline
	tie      rank.TieBreak
	store    store.Store
	entropy  *ulid.MonotonicEntropy
	now      func() time.Time
}

// Options configures an Engine
type Options struct {
	Pipeline *ingest.Pipeline // nil uses ingest.DefaultPipeline
	Tie      rank.TieBreak
	Store    store.Store // optional export target
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	p := opts.Pipeline
	if p == nil {
		p = ingest.DefaultPipeline()
	}
	return &Engine{
		pipeline: p,
		tie:      opts.Tie,
		store:    opts.Store,
		entropy:  ulid.Monotonic(rand.Reader, 0),
		now:      time.Now,
	}
}

// Close closes the export store, if any
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Result is the outcome of one run
type Result struct {
	ID        string
	Source    string
	Total     int
	Ranked    []rank.Entry   // every content word, in rank order
	Words     map[string]int // content-word counts
	Stopwords map[string]int // stopword counts
}

// Run consumes r and ranks its words. On error no partial result is
// returned. When a store is configured the full ranking is exported.
func (e *Engine) Run(ctx context.Context, source string, r io.Reader) (Result, error) {
	agg := e.pipeline.NewAggregator()
	if err := e.pipeline.Consume(agg, r); err != nil {
		return Result{}, err
	}
	return e.finish(ctx, source, agg)
}

// Analyze ranks a fully buffered text.
func (e *Engine) Analyze(ctx context.Context, source, text string) (Result, error) {
	agg := e.pipeline.NewAggregator()
	e.pipeline.Process(agg, text)
	return e.finish(ctx, source, agg)
}

func (e *Engine) finish(ctx context.Context, source string, agg *counts.Aggregator) (Result, error) {
	stats := agg.Snapshot()
	now := e.now()

	res := Result{
		ID:        ulid.MustNew(ulid.Timestamp(now), e.entropy).String(),
		Source:    source,
		Total:     stats.Total,
		Ranked:    rank.Rank(stats.Words, e.tie),
		Words:     stats.Words,
		Stopwords: stats.Stopwords,
	}

	if e.store != nil {
		err := e.store.SaveRun(ctx, store.Run{
			ID:        res.ID,
			Source:    source,
			Total:     res.Total,
			Entries:   res.Ranked,
			CreatedAt: now,
		})
		if err != nil {
			return Result{}, fmt.Errorf("export run: %w", err)
		}
	}

	return res, nil
}

// Top returns the first n ranked entries.
func (r Result) Top(n int) []rank.Entry {
	return rank.Top(r.Ranked, n)
}

// String summarizes a result for logs.
func (r Result) String() string {
	return fmt.Sprintf("run %s source=%q total=%d distinct=%d stopwords=%d",
		r.ID, r.Source, r.Total, len(r.Ranked), len(r.Stopwords))
}
