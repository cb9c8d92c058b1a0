package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
	"github.com/cognicore/wordrank/pkg/wordrank/rank"
)

// Format selects how a report is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses "text" or "json"; the empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("%w: unknown format %q", internalerr.ErrInvalidConfig, s)
	}
}

// Reporter renders the total and the top N ranked words
type Reporter struct {
	N      int
	Format Format
}

// New creates a text reporter for the top n words.
func New(n int) *Reporter {
	return &Reporter{N: n, Format: FormatText}
}

// TotalLine renders the total token count line.
func TotalLine(total int) string {
	return fmt.Sprintf("Total words read: %d", total)
}

// WordLine renders one ranked entry.
func WordLine(e rank.Entry) string {
	return fmt.Sprintf("The word '%s' occurred %d times.", e.Word, e.Count)
}

// Lines returns the total line followed by at most N word lines in ranked
// order.
func (r *Reporter) Lines(total int, ranked []rank.Entry) []string {
	top := rank.Top(ranked, r.N)
	lines := make([]string, 0, len(top)+1)
	lines = append(lines, TotalLine(total))
	for _, e := range top {
		lines = append(lines, WordLine(e))
	}
	return lines
}

type jsonReport struct {
	Total int        `json:"total"`
	Words []jsonWord `json:"words"`
}

type jsonWord struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Write renders the report to w in the reporter's format.
func (r *Reporter) Write(w io.Writer, total int, ranked []rank.Entry) error {
	switch r.Format {
	case FormatJSON:
		top := rank.Top(ranked, r.N)
		out := jsonReport{Total: total, Words: make([]jsonWord, 0, len(top))}
		for _, e := range top {
			out.Words = append(out.Words, jsonWord{Word: e.Word, Count: e.Count})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		for _, line := range r.Lines(total, ranked) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
