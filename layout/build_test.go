package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/leasap/dsl"
)

// buildScript 是测试辅助：用给定脚本文本构建布局结果。
func buildScript(t *testing.T, script string, data any) *Document {
	t.Helper()
	doc, err := dsl.Parse(strings.NewReader(script))
	if err != nil {
		t.Fatalf("解析脚本失败: %v", err)
	}
	res, err := Build(doc, data, Options{Typesetter: &stubTypesetter{}})
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	return res
}

func TestBuildRunsCommandsInOrder(t *testing.T) {
	script := `doc Q v1 {
  meta { title: "Quiz" keywords: ["a", "b"] }
  page letter portrait margins normal {
    font helvetica bold 16
    text center "Hello ${user.name}"
    font normal 12
    list ordered num {
      "Question one"
      list ordered alpha { "yes"; "no" }
      "Question two"
    }
    newpage
    list unordered "-" { "tip" }
    "bare literal"
  }
}`
	doc := buildScript(t, script, map[string]any{"user": map[string]any{"name": "Ada"}})
	if doc.Meta.Title != "Quiz" || len(doc.Meta.Keywords) != 2 {
		t.Fatalf("meta not collected: %+v", doc.Meta)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}
	first := doc.Pages[0].Texts
	if first[0].Content != "Hello Ada" || first[0].Align != AlignCenter {
		t.Fatalf("unexpected title box: %+v", first[0])
	}
	if first[0].Font != (FontConfig{Family: Helvetica, Emphasis: Bold, SizePt: 16}) {
		t.Fatalf("font command not applied: %+v", first[0].Font)
	}
	var got []string
	for _, tb := range first[1:] {
		got = append(got, tb.Content)
	}
	if strings.Join(got, "|") != "1. Question one|a. yes|b. no|2. Question two" {
		t.Fatalf("unexpected list: %v", got)
	}
	if first[1].Font.Emphasis != Normal || first[1].Font.Family != Helvetica {
		t.Fatalf("font patch should keep family: %+v", first[1].Font)
	}
	second := doc.Pages[1].Texts
	if len(second) != 2 || second[0].Content != "- tip" || second[1].Content != "bare literal" {
		t.Fatalf("unexpected second page: %+v", second)
	}
}

func TestBuildPageSpecs(t *testing.T) {
	cases := []struct {
		spec    string
		w, h    float64
		margins Margins
	}{
		{"letter", 8.5, 11, Margins{Top: 1, Bottom: 1, Left: 1, Right: 1}},
		{"legal landscape margins narrow", 14, 8.5, Margins{Top: 0.5, Bottom: 0.5, Left: 0.5, Right: 0.5}},
		{"custom 6in 9in margins 0.5in", 6, 9, Margins{Top: 0.5, Bottom: 0.5, Left: 0.5, Right: 0.5}},
		{"letter margins 1in 0.5in", 8.5, 11, Margins{Top: 1, Bottom: 1, Left: 0.5, Right: 0.5}},
		{"letter margins 25.4mm 72pt 2.54cm 0.75", 8.5, 11, Margins{Top: 1, Right: 1, Bottom: 1, Left: 0.75}},
	}
	for _, c := range cases {
		doc := buildScript(t, "doc T v1 { page "+c.spec+" { \"x\" } }", nil)
		if !near(doc.Width, c.w) || !near(doc.Height, c.h) {
			t.Fatalf("%s: size %gx%g", c.spec, doc.Width, doc.Height)
		}
		m := doc.Margin
		if !near(m.Top, c.margins.Top) || !near(m.Bottom, c.margins.Bottom) || !near(m.Left, c.margins.Left) || !near(m.Right, c.margins.Right) {
			t.Fatalf("%s: margins %+v, want %+v", c.spec, m, c.margins)
		}
	}
}

func TestBuildLegacyCursor(t *testing.T) {
	doc := buildScript(t, `doc T v1 { page letter margins 1in 0.5in legacy-cursor { "a"; newpage; "b" } }`, nil)
	if got := doc.Pages[1].Texts[0].Y; !near(got, 0.5) {
		t.Fatalf("legacy cursor should start page two at the right margin, got %g", got)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string]string{
		"unknown format":   `doc T v1 { page tabloid { "x" } }`,
		"unknown font":     `doc T v1 { page letter { font garamond } }`,
		"unknown bullet":   `doc T v1 { page letter { list unordered "+" { "x" } } }`,
		"unknown list":     `doc T v1 { page letter { list fancy { "x" } } }`,
		"bad align":        `doc T v1 { page letter { text sideways "x" } }`,
		"empty text":       `doc T v1 { page letter { text } }`,
		"command in list":  `doc T v1 { page letter { list ordered { font bold } } }`,
		"bad page param":   `doc T v1 { page letter upside { "x" } }`,
		"custom w/o sizes": `doc T v1 { page custom { "x" } }`,
	}
	for name, script := range cases {
		doc, err := dsl.ParseString(script)
		if err != nil {
			t.Fatalf("%s: parse failed: %v", name, err)
		}
		if _, err := Build(doc, nil, Options{Typesetter: &stubTypesetter{}}); err == nil {
			t.Fatalf("%s: expected build error", name)
		}
	}

	doc, _ := dsl.ParseString(`doc T v1 { page tabloid { "x" } }`)
	if _, err := Build(doc, nil, Options{Typesetter: &stubTypesetter{}}); !errors.Is(err, ErrConfig) {
		t.Fatalf("unknown format should be ErrConfig, got %v", err)
	}
	if _, err := Build(nil, nil, Options{Typesetter: &stubTypesetter{}}); err == nil {
		t.Fatalf("nil script should fail")
	}
}
