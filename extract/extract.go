// Package extract reads the text layer of a PDF, one segment per page.
package extract

import (
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNoText is returned when no page carries extractable text.
var ErrNoText = errors.New("extract: no text layer found")

// Pages returns the plain text of every page that has a text layer.
// Pages without text (scanned images) are skipped with a warning.
func Pages(path string, logger *slog.Logger) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PDF %s", path)
	}
	defer func() { _ = f.Close() }()
	return readPages(r, logger)
}

// PagesFromReader is Pages for an in-memory document.
func PagesFromReader(ra io.ReaderAt, size int64, logger *slog.Logger) ([]string, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	return readPages(r, logger)
}

func readPages(r *pdf.Reader, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to extract page %d", i)
		}
		text = ToASCII(text)
		if strings.TrimSpace(text) == "" {
			logger.Warn("page has no text layer, skipping", "page", i)
			continue
		}
		pages = append(pages, text)
	}
	if len(pages) == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}

// ToASCII folds accents ("café" → "cafe") and drops every other non-ASCII
// rune, so prompts and core-font output stay in plain ASCII.
func ToASCII(s string) string {
	// Chain 带状态，不能在 goroutine 之间共享
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
