package canvasrenderer

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/leasap/layout"
)

var body = layout.FontConfig{Family: layout.Times, Emphasis: layout.Normal, SizePt: 12}

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer()
	lines, err := r.LayoutLines("hello world again", 0.5, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

// TestLayoutLinesWidthInInches 验证行宽以英寸返回，且不超过限制。
func TestLayoutLinesWidthInInches(t *testing.T) {
	r := NewRenderer()
	lines, err := r.LayoutLines("M", 10, body)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	// 12pt 的 M 约 0.1-0.2 英寸宽
	if w := lines[0].Width; w <= 0.05 || w >= 0.25 {
		t.Fatalf("unexpected width for M at 12pt: %g", w)
	}

	limit := 1.0
	lines, err = r.LayoutLines("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", limit, body)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-6 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
	}
}

func TestEmphasisChangesMetrics(t *testing.T) {
	r := NewRenderer()
	regular, _ := r.LayoutLines("Heading text", 10, body)
	bold, err := r.LayoutLines("Heading text", 10, layout.FontConfig{Family: layout.Times, Emphasis: layout.Bold, SizePt: 12})
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if math.Abs(regular[0].Width-bold[0].Width) < 1e-9 {
		t.Fatalf("bold face should measure differently from regular")
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()
	engine, err := layout.New(layout.Config{Format: "letter", MarginPreset: "normal"}, layout.Options{Typesetter: r})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	engine.SetMeta(layout.DocumentMeta{Title: "canvas"})
	if err := engine.AppendText("Centered title", layout.AlignCenter); err != nil {
		t.Fatalf("AppendText: %v", err)
	}
	if err := engine.AppendText("some justified text that is long enough to wrap across more than a single line of the page", layout.AlignJustify); err != nil {
		t.Fatalf("AppendText: %v", err)
	}
	engine.AddPageAndFocusThatPage()
	if err := engine.AppendList(layout.NewUnordered(layout.BulletDash, layout.Texts("x", "y")...), layout.AlignRight); err != nil {
		t.Fatalf("AppendList: %v", err)
	}
	data, err := r.Render(engine.Output())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("nil document should fail")
	}
}

func TestInjectedFontOverridesEmbedded(t *testing.T) {
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"times-normal": {Path: "does-not-exist.ttf"}}})
	_, err := r.LayoutLines("x", 1, body)
	if err == nil {
		t.Fatalf("unreadable injected font should fail")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected the read error to be kept, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "empty.ttf")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	empty := NewRendererWithOptions(Options{Fonts: map[string]Resource{"times-normal": {Path: path}}})
	if _, err := empty.LayoutLines("x", 1, body); err == nil {
		t.Fatalf("empty injected font should fail")
	}
}
