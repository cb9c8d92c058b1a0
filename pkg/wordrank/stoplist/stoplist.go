package stoplist

import (
	"sort"
	"strings"
)

// defaultTerms are the low-information English function words excluded
// from ranking unless a configuration replaces them.
var defaultTerms = [...]string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if",
	"in", "into", "is", "it", "no", "not", "of", "on", "or", "such",
	"that", "the", "their", "then", "there", "these", "they", "this",
	"to", "was", "will", "with",
}

// Origin records where a stopword came from
type Origin int

const (
	Builtin    Origin = iota // from the default list
	Configured               // from a config file or terms list
	Extra                    // added on top of the active list
)

// Manager classifies canonical words as stopwords
type Manager struct {
	stops map[string]Origin
}

// DefaultTerms returns a copy of the built-in stopword list.
func DefaultTerms() []string {
	out := make([]string, len(defaultTerms))
	copy(out, defaultTerms[:])
	return out
}

// Default returns a Manager holding the built-in stopword list.
func Default() *Manager {
	m := &Manager{stops: make(map[string]Origin, len(defaultTerms))}
	for _, s := range defaultTerms {
		m.stops[s] = Builtin
	}
	return m
}

// NewManager creates a stoplist manager from configured terms.
// Terms are lowercased once here; IsStop does no normalization.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Origin, len(initialStops))
	for _, s := range initialStops {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = Configured
	}
	return &Manager{stops: stops}
}

// Empty returns a Manager that classifies nothing as a stopword.
func Empty() *Manager {
	return &Manager{stops: map[string]Origin{}}
}

// IsStop checks if a word is a stopword. The match is exact.
func (m *Manager) IsStop(word string) bool {
	_, ok := m.stops[word]
	return ok
}

// Add adds a word to the stoplist
func (m *Manager) Add(word string, origin Origin) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	m.stops[word] = origin
}

// Remove removes a word from the stoplist
func (m *Manager) Remove(word string) {
	delete(m.stops, strings.ToLower(word))
}

// Origin reports where a stopword came from.
func (m *Manager) Origin(word string) (Origin, bool) {
	o, ok := m.stops[word]
	return o, ok
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stopwords
func (m *Manager) Len() int {
	return len(m.stops)
}
