package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/leasap/dsl"
)

const sampleDSL = `
doc Study v1 {
  meta {
    title: "Photosynthesis"
    keywords: [
      "biology"
      "quiz"
    ]
  }

  page letter portrait margins 1in 1in 1in 1in {
    font times bold 16
    text center "Hello, ${user.name}!"

    list ordered num {
      "Which organelle hosts photosynthesis?"
      list ordered alpha { "Chloroplast"; "Nucleus" }
      // trailing comment
      "What gas is released?"
    }
    list unordered "*" { "one" }
    newpage
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Study" {
		t.Fatalf("expected document name Study, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}

	meta := doc.Sections[0].Meta
	if meta == nil {
		t.Fatalf("meta section missing")
	}
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Photosynthesis" {
		t.Fatalf("expected title Photosynthesis, got %s", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil {
		t.Fatalf("expected keywords array assignment")
	}
	if got := keywords.Value.Strings(); len(got) != 2 || got[0] != "biology" {
		t.Fatalf("unexpected keywords: %v", got)
	}

	page := doc.Sections[1].Page
	if page == nil {
		t.Fatalf("page section missing")
	}
	if page.Spec.Size != "letter" {
		t.Fatalf("expected page size letter, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 6 {
		t.Fatalf("expected 6 page params, got %d", len(page.Spec.Params))
	}
	if page.Spec.Params[0].Value != "portrait" || page.Spec.Params[2].Value != "1in" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}

	stmts := page.Block.Statements
	if len(stmts) != 5 {
		t.Fatalf("expected 5 page statements, got %d", len(stmts))
	}
	font := stmts[0].Font
	if font == nil || len(font.Args) != 3 {
		t.Fatalf("unexpected font command: %+v", stmts[0])
	}
	if *font.Args[0].Word != "times" || *font.Args[1].Word != "bold" || *font.Args[2].Size != "16" {
		t.Fatalf("unexpected font args: %+v %+v %+v", font.Args[0], font.Args[1], font.Args[2])
	}

	text := stmts[1].Text
	if text == nil || text.Align != "center" || len(text.Parts) != 1 {
		t.Fatalf("unexpected text command: %+v", stmts[1])
	}
	if !strings.Contains(string(text.Parts[0].Value), "${user.name}") {
		t.Fatalf("expected unquoted string argument, got %q", text.Parts[0].Value)
	}

	list := stmts[2].List
	if list == nil || list.Kind != "ordered" || len(list.Words) != 1 || list.Words[0] != "num" || list.Block == nil {
		t.Fatalf("expected ordered list with block, got %+v", stmts[2])
	}
	body := list.Block.Statements
	if len(body) != 3 {
		t.Fatalf("expected 3 list entries, got %d", len(body))
	}
	if body[0].Literal == nil || body[1].List == nil || body[2].Literal == nil {
		t.Fatalf("unexpected list body: %+v", body)
	}
	if got := len(body[1].List.Block.Statements); got != 2 {
		t.Fatalf("expected 2 nested entries, got %d", got)
	}

	bullet := stmts[3].List
	if bullet == nil || bullet.Kind != "unordered" || bullet.Marker.Value() != "*" {
		t.Fatalf("unexpected unordered list: %+v", stmts[3])
	}
	if stmts[4].NewPage == nil || stmts[4].NewPage.Keyword != "newpage" {
		t.Fatalf("expected newpage command, got %+v", stmts[4])
	}
}

func TestParseTypedCommandVariants(t *testing.T) {
	doc, err := dsl.ParseString(`doc X v1 {
  page letter {
    list unordered - right { "bare bullet" }
    text {
      "first"
      "second"
    }
    page-break
    shade 0.5 "grey"
  }
}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	stmts := doc.Sections[0].Page.Block.Statements
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	list := stmts[0].List
	if list == nil || list.Marker.Value() != "-" || len(list.Words) != 1 || list.Words[0] != "right" {
		t.Fatalf("unexpected bare-marker list: %+v", stmts[0])
	}
	text := stmts[1].Text
	if text == nil || text.Align != "" || len(text.Parts) != 0 || text.Block == nil || len(text.Block.Statements) != 2 {
		t.Fatalf("expected text with a literal block, got %+v", stmts[1])
	}
	if stmts[2].NewPage == nil || stmts[2].NewPage.Keyword != "page-break" {
		t.Fatalf("expected page-break, got %+v", stmts[2])
	}
	other := stmts[3].Command
	if other == nil || other.Name != "shade" || tokensToString(other.Args) != "0.5 grey" {
		t.Fatalf("unknown commands should stay generic, got %+v", stmts[3])
	}
}

func TestParseRejectsUnterminatedBlock(t *testing.T) {
	if _, err := dsl.ParseString(`doc X v1 { page letter { text "x" }`); err == nil {
		t.Fatalf("expected parse error")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
