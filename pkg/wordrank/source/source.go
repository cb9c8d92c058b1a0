package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/wordrank/pkg/wordrank/internalerr"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// Open opens a named text source. Failures wrap
// internalerr.ErrSourceUnavailable and keep the os error matchable.
func Open(name string) (io.ReadCloser, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no source given", internalerr.ErrInvalidInvocation)
	}
	if name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrSourceUnavailable, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", internalerr.ErrSourceUnavailable, name)
	}
	return f, nil
}

// Size returns the byte size of a named source, or -1 when unknown
// (stdin, pipes, missing files).
func Size(name string) int64 {
	if name == "" || name == Stdin {
		return -1
	}
	info, err := os.Stat(name)
	if err != nil || !info.Mode().IsRegular() {
		return -1
	}
	return info.Size()
}

// HTMLText extracts the visible text of an HTML document. Text nodes are
// separated by newlines so adjacent elements never fuse into one token.
// Contents of script and style elements are skipped.
func HTMLText(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)

	var buf strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: parse html: %w", internalerr.ErrSourceUnavailable, err)
			}
			return buf.String(), nil
		case html.StartTagToken:
			if isHidden(z) {
				skip++
			}
		case html.EndTagToken:
			if isHidden(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.TrimSpace(string(z.Text()))
			if text == "" {
				continue
			}
			buf.WriteString(text)
			buf.WriteByte('\n')
		}
	}
}

func isHidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
