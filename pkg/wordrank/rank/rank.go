package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
)

// Entry is one ranked (count, word) pair
type Entry struct {
	Count int
	Word  string
}

// Buckets groups words sharing the same occurrence count
type Buckets map[int][]string

// TieBreak orders words that share a count
type TieBreak int

const (
	// TieAscending puts "a" before "b" among equal counts.
	TieAscending TieBreak = iota
	// TieDescending reverses the word order among equal counts.
	TieDescending
)

func (t TieBreak) String() string {
	switch t {
	case TieAscending:
		return "ascending"
	case TieDescending:
		return "descending"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak parses "ascending"/"asc" or "descending"/"desc".
// The empty string selects TieAscending.
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascending", "asc":
		return TieAscending, nil
	case "descending", "desc":
		return TieDescending, nil
	default:
		return TieAscending, fmt.Errorf("%w: unknown tie-break %q", internalerr.ErrInvalidConfig, s)
	}
}

// Bucket inverts a word→count mapping into count→words.
// The input is not modified.
func Bucket(wordCount map[string]int) Buckets {
	b := make(Buckets)
	for word, count := range wordCount {
		b[count] = append(b[count], word)
	}
	return b
}

// Flatten emits every (count, word) pair ordered by count descending, then
// by word according to tie. The result does not depend on map iteration
// order.
func Flatten(b Buckets, tie TieBreak) []Entry {
	n := 0
	for _, words := range b {
		n += len(words)
	}

	entries := make([]Entry, 0, n)
	for count, words := range b {
		for _, w := range words {
			entries = append(entries, Entry{Count: count, Word: w})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if tie == TieDescending {
			return entries[i].Word > entries[j].Word
		}
		return entries[i].Word < entries[j].Word
	})

	return entries
}

// Rank buckets and flattens a word→count mapping.
func Rank(wordCount map[string]int, tie TieBreak) []Entry {
	return Flatten(Bucket(wordCount), tie)
}

// Top returns at most n leading entries; n <= 0 returns none.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
