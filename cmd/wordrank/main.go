package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/cognicore/wordrank/pkg/wordrank"
	"github.com/cognicore/wordrank/pkg/wordrank/config"
	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
	"github.com/cognicore/wordrank/pkg/wordrank/source"
	"github.com/cognicore/wordrank/pkg/wordrank/store"
	"github.com/cognicore/wordrank/pkg/wordrank/store/sqlite"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // source unavailable or runtime error
	exitUsage   = 2 // invalid invocation or configuration
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	envFile    string
	topN       int
	tieBreak   string
	format     string
	stem       bool
	html       bool
	progress   bool
	exportDB   string
	verbose    bool
	source     string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	fset := flag.NewFlagSet("wordrank", flag.ContinueOnError)
	fset.SetOutput(stderr)

	opts := &options{}
	fset.StringVar(&opts.configPath, "config", "", "YAML config file (optional)")
	fset.StringVar(&opts.envFile, "env", "", "dotenv file with WORDRANK_* overrides (default .env)")
	fset.IntVar(&opts.topN, "n", 10, "Number of words to report")
	fset.StringVar(&opts.tieBreak, "tie-break", "ascending", "Order of equal-count words: ascending or descending")
	fset.StringVar(&opts.format, "format", "text", "Report format: text or json")
	fset.BoolVar(&opts.stem, "stem", false, "Apply English stemming to words")
	fset.BoolVar(&opts.html, "html", false, "Treat the source as HTML and rank its visible text")
	fset.BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr while reading")
	fset.StringVar(&opts.exportDB, "export", "", "SQLite database to export the full ranking to (optional)")
	fset.BoolVar(&opts.verbose, "v", false, "Log diagnostics to stderr")
	fset.Usage = func() {
		fmt.Fprintf(fset.Output(), "usage: wordrank [flags] <file>\n\nCount words in a text file and report the most frequent ones.\nUse - to read standard input.\n\nflags:\n")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", internalerr.ErrInvalidInvocation, err)
	}
	if fset.NArg() != 1 {
		fset.Usage()
		return nil, nil, fmt.Errorf("%w: expected exactly one file, got %d", internalerr.ErrInvalidInvocation, fset.NArg())
	}
	opts.source = fset.Arg(0)
	return opts, fset, nil
}

// loadConfig reads the config file and applies flags that were set
// explicitly on the command line.
func loadConfig(opts *options, fset *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.TopN = opts.topN
		case "tie-break":
			cfg.TieBreak = opts.tieBreak
		case "format":
			cfg.Format = opts.format
		case "stem":
			cfg.Normalize.Stem = opts.stem
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fset, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(stderr, "wordrank: ", log.Ltime|log.Lmicroseconds)
	}

	cfg, err := loadConfig(opts, fset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	comps, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger.Printf("preset=%s top_n=%d tie_break=%s stopwords=%d stem=%v",
		cfg.Preset, cfg.TopN, comps.Tie, comps.Pipeline.Stoplist().Len(), cfg.Normalize.Stem)

	ctx := context.Background()

	var st store.Store
	if opts.exportDB != "" {
		st, err = sqlite.OpenSQLite(ctx, opts.exportDB)
		if err != nil {
			fmt.Fprintf(stderr, "open export database: %v\n", err)
			return exitFailure
		}
	}

	engine := wordrank.New(wordrank.Options{
		Pipeline: comps.Pipeline,
		Tie:      comps.Tie,
		Store:    st,
	})
	defer engine.Close()

	res, err := rankSource(ctx, engine, opts, stderr)
	if err != nil {
		fmt.Fprintln(stderr, sourceMessage(opts.source, err))
		return exitFailure
	}
	logger.Print(res)

	if err := comps.Reporter.Write(stdout, res.Total, res.Ranked); err != nil {
		fmt.Fprintf(stderr, "write report: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func rankSource(ctx context.Context, engine *wordrank.Engine, opts *options, stderr io.Writer) (wordrank.Result, error) {
	rc, err := source.Open(opts.source)
	if err != nil {
		return wordrank.Result{}, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if opts.progress {
		if size := source.Size(opts.source); size > 0 {
			bar := pb.New64(size).SetTemplate(pb.Full).SetWriter(stderr).Start()
			defer bar.Finish()
			r = bar.NewProxyReader(rc)
		}
	}

	if opts.html {
		text, err := source.HTMLText(r)
		if err != nil {
			return wordrank.Result{}, err
		}
		r = strings.NewReader(text)
	}

	return engine.Run(ctx, opts.source, r)
}

func sourceMessage(name string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("File '%s' not found. Please try again.", name)
	}
	return fmt.Sprintf("cannot read '%s': %v", name, err)
}
