package counts

// Normalizer maps a raw token to its canonical word, or "" when nothing
// countable remains.
type Normalizer interface {
	Normalize(token string) string
}

// Classifier decides whether a canonical word is a stopword.
type Classifier interface {
	IsStop(word string) bool
}

// Aggregator accumulates per-word occurrence counts for a single run.
// Content words and stopwords are kept in disjoint maps.
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	normalizer Normalizer
	classifier Classifier

	total int            // every raw token seen
	words map[string]int // non-stopword canonical words
	stops map[string]int // stopword canonical words
}

// NewAggregator creates an empty aggregator.
func NewAggregator(n Normalizer, c Classifier) *Aggregator {
	return &Aggregator{
		normalizer: n,
		classifier: c,
		words:      make(map[string]int),
		stops:      make(map[string]int),
	}
}

// Ingest counts one raw token. The total is incremented even when the
// token normalizes to the empty string.
func (a *Aggregator) Ingest(raw string) {
	a.total++

	word := a.normalizer.Normalize(raw)
	if word == "" {
		return
	}

	if a.classifier.IsStop(word) {
		a.stops[word]++
		return
	}
	a.words[word]++
}

// Total returns the number of raw tokens ingested
func (a *Aggregator) Total() int {
	return a.total
}

// Distinct returns the number of distinct content words
func (a *Aggregator) Distinct() int {
	return len(a.words)
}

// Count returns the occurrences of a canonical word and whether it is a
// stopword.
func (a *Aggregator) Count(word string) (count int, stop bool) {
	if n, ok := a.stops[word]; ok {
		return n, true
	}
	return a.words[word], false
}

// WordCounts returns a copy of the content-word counts
func (a *Aggregator) WordCounts() map[string]int {
	return copyCounts(a.words)
}

// StopwordCounts returns a copy of the stopword counts
func (a *Aggregator) StopwordCounts() map[string]int {
	return copyCounts(a.stops)
}

// Stats is a point-in-time copy of an aggregator's state.
type Stats struct {
	Total     int
	Words     map[string]int
	Stopwords map[string]int
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Aggregator) Snapshot() Stats {
	return Stats{
		Total:     a.total,
		Words:     a.WordCounts(),
		Stopwords: a.StopwordCounts(),
	}
}

// Counted returns the number of tokens that landed in either map.
func (s Stats) Counted() int {
	n := 0
	for _, c := range s.Words {
		n += c
	}
	for _, c := range s.Stopwords {
		n += c
	}
	return n
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
