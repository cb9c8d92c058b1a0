package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/wordrank/pkg/wordrank/counts"
	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
	"github.com/cognicore/wordrank/pkg/wordrank/stoplist"
)

// Pipeline orchestrates the ingestion flow:
// text → whitespace split → normalization → stopword classification → counts
type Pipeline struct {
	normalizer *Normalizer
	stoplist   *stoplist.Manager
}

// NewPipeline creates an ingestion pipeline with the given components.
// A nil stoplist classifies nothing as a stopword.
func NewPipeline(normalizer *Normalizer, stops *stoplist.Manager) *Pipeline {
	if normalizer == nil {
		normalizer = defaultNormalizer
	}
	if stops == nil {
		stops = stoplist.Empty()
	}
	return &Pipeline{
		normalizer: normalizer,
		stoplist:   stops,
	}
}

// DefaultPipeline uses the default normalization rules and stopwords.
func DefaultPipeline() *Pipeline {
	return NewPipeline(NewNormalizer(DefaultNormalizerOptions()), stoplist.Default())
}

// Normalizer returns the pipeline's normalizer
func (p *Pipeline) Normalizer() *Normalizer {
	return p.normalizer
}

// Stoplist returns the pipeline's stopword classifier
func (p *Pipeline) Stoplist() *stoplist.Manager {
	return p.stoplist
}

// NewAggregator returns an empty aggregator for one run.
func (p *Pipeline) NewAggregator() *counts.Aggregator {
	return counts.NewAggregator(p.normalizer, p.stoplist)
}

// Process ingests a fully buffered text.
func (p *Pipeline) Process(agg *counts.Aggregator, text string) {
	for _, tok := range strings.Fields(text) {
		agg.Ingest(tok)
	}
}

// Consume reads r a line at a time and ingests every token. Lines are not
// length limited. Read failures and malformed UTF-8 are reported as
// internalerr.ErrSourceUnavailable; the aggregator must then be discarded.
func (p *Pipeline) Consume(agg *counts.Aggregator, r io.Reader) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if !utf8.ValidString(line) {
				return fmt.Errorf("%w: line %d: %w", internalerr.ErrSourceUnavailable, lineNo, internalerr.ErrInvalidEncoding)
			}
			p.Process(agg, line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", internalerr.ErrSourceUnavailable, err)
		}
	}
}
