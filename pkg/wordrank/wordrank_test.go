package wordrank

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/wordrank/pkg/wordrank/ingest"
	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
	"github.com/cognicore/wordrank/pkg/wordrank/rank"
	"github.com/cognicore/wordrank/pkg/wordrank/report"
	"github.com/cognicore/wordrank/pkg/wordrank/store/memstore"
)

const catText = "The cat sat on the mat. The cat ran."

func TestRunCatScenario(t *testing.T) {
	ctx := context.Background()
	engine := New(Options{})
	defer engine.Close()

	res, err := engine.Run(ctx, "cat.txt", strings.NewReader(catText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Total != 9 {
		t.Errorf("Expected total 9, got %d", res.Total)
	}
	if res.Stopwords["the"] != 3 || res.Stopwords["on"] != 1 || len(res.Stopwords) != 2 {
		t.Errorf("Unexpected stopwords: %v", res.Stopwords)
	}

	want := []rank.Entry{{Count: 2, Word: "cat"}, {Count: 1, Word: "mat"}, {Count: 1, Word: "ran"}, {Count: 1, Word: "sat"}}
	if len(res.Ranked) != len(want) {
		t.Fatalf("Expected %v, got %v", want, res.Ranked)
	}
	for i := range want {
		if res.Ranked[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, res.Ranked[i], want[i])
		}
	}

	lines := report.New(10).Lines(res.Total, res.Ranked)
	if lines[0] != "Total words read: 9" || lines[1] != "The word 'cat' occurred 2 times." || len(lines) != 5 {
		t.Errorf("Unexpected report: %v", lines)
	}
}

func TestRunEmptyInput(t *testing.T) {
	engine := New(Options{})
	res, err := engine.Run(context.Background(), "empty.txt", strings.NewReader(""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Total != 0 || len(res.Ranked) != 0 {
		t.Errorf("Expected empty result, got %+v", res)
	}

	lines := report.New(10).Lines(res.Total, res.Ranked)
	if len(lines) != 1 || lines[0] != "Total words read: 0" {
		t.Errorf("Unexpected report: %v", lines)
	}
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	engine := New(Options{})
	text := strings.Repeat("alpha beta, gamma's delta! The alpha of beta.\n", 20)

	a, err := engine.Run(ctx, "a", strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	b, err := engine.Analyze(ctx, "b", text)
	if err != nil {
		t.Fatal(err)
	}

	if a.Total != b.Total || len(a.Ranked) != len(b.Ranked) {
		t.Fatalf("Runs differ: %v vs %v", a, b)
	}
	for i := range a.Ranked {
		if a.Ranked[i] != b.Ranked[i] {
			t.Errorf("entry %d differs: %v vs %v", i, a.Ranked[i], b.Ranked[i])
		}
	}
	if a.ID == b.ID {
		t.Error("Each run should get its own ID")
	}
}

func TestRunInvariants(t *testing.T) {
	text := "--- !!! Word's word WORD. the The a An ... it's It is (is) x"
	engine := New(Options{})
	res, err := engine.Analyze(context.Background(), "", text)
	if err != nil {
		t.Fatal(err)
	}

	if res.Total != len(strings.Fields(text)) {
		t.Errorf("Total %d != field count %d", res.Total, len(strings.Fields(text)))
	}

	counted := 0
	for w, c := range res.Words {
		if _, ok := res.Stopwords[w]; ok {
			t.Errorf("%q present in both maps", w)
		}
		counted += c
	}
	for _, c := range res.Stopwords {
		counted += c
	}
	if res.Total < counted {
		t.Errorf("Total %d < counted %d", res.Total, counted)
	}

	// Every counted word equals the number of tokens normalizing to it.
	expect := make(map[string]int)
	for _, tok := range strings.Fields(text) {
		if w := ingest.Normalize(tok); w != "" {
			expect[w]++
		}
	}
	for w, c := range expect {
		got := res.Words[w] + res.Stopwords[w]
		if got != c {
			t.Errorf("%q counted %d, want %d", w, got, c)
		}
	}

	if len(res.Ranked) != len(res.Words) {
		t.Errorf("Ranked length %d != distinct words %d", len(res.Ranked), len(res.Words))
	}
	if res.Words["word"] != 3 {
		t.Errorf("Expected word=3, got %d", res.Words["word"])
	}
}

func TestRunTieDescending(t *testing.T) {
	engine := New(Options{Tie: rank.TieDescending})
	res, err := engine.Analyze(context.Background(), "", catText)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ranked[1].Word != "sat" || res.Ranked[3].Word != "mat" {
		t.Errorf("Expected descending ties, got %v", res.Ranked)
	}
}

func TestRunExportsToStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	engine := New(Options{Store: st})
	defer engine.Close()

	res, err := engine.Run(ctx, "cat.txt", strings.NewReader(catText))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	run, ok, err := st.GetRun(ctx, res.ID)
	if err != nil || !ok {
		t.Fatalf("GetRun: ok=%v err=%v", ok, err)
	}
	if run.Total != 9 || run.Source != "cat.txt" || len(run.Entries) != 4 || run.Entries[0].Word != "cat" {
		t.Errorf("Unexpected exported run: %+v", run)
	}
}

func TestRunSourceErrorNoPartialResult(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	engine := New(Options{Store: st})

	res, err := engine.Run(ctx, "bad.txt", strings.NewReader("good words\n\xff\n"))
	if !errors.Is(err, internalerr.ErrSourceUnavailable) {
		t.Fatalf("Expected ErrSourceUnavailable, got %v", err)
	}
	if res.Total != 0 || res.Ranked != nil || res.ID != "" {
		t.Errorf("Expected zero result on error, got %+v", res)
	}

	runs, _ := st.ListRuns(ctx, 0)
	if len(runs) != 0 {
		t.Errorf("Failed run should not be exported, got %d runs", len(runs))
	}
}

func TestResultTop(t *testing.T) {
	res, _ := New(Options{}).Analyze(context.Background(), "", catText)
	if len(res.Top(2)) != 2 || len(res.Top(0)) != 0 || len(res.Top(99)) != 4 {
		t.Error("Top should truncate to min(n, len)")
	}
}
