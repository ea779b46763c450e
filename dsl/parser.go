package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[][(),.=+\-*/%<>!?;:]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	tokenNames       = invertSymbols(dslLexer.Symbols())
	newlineTokenType = mustTokenType("Newline")
	lbraceTokenType  = mustTokenType("LBrace")
	rbraceTokenType  = mustTokenType("RBrace")
	symbolTokenType  = mustTokenType("Symbol")
	stringTokenType  = mustTokenType("String")

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root AST node of a layout script.
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'doc' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section represents a top-level section (meta/page).
type Section struct {
	Meta *MetaSection `parser:"  @@"`
	Page *PageSection `parser:"| @@"`
}

// Kind returns the human-readable section type.
func (s *Section) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Meta != nil:
		return "meta"
	case s.Page != nil:
		return "page"
	default:
		return "unknown"
	}
}

// MetaSection captures metadata assignments.
type MetaSection struct {
	Block *Block `parser:"'meta' @@"`
}

// PageSection describes the page geometry and the content flowed onto it.
type PageSection struct {
	Spec  PageSpec `parser:"'page' @@"`
	Block *Block   `parser:"@@"`
}

// PageSpec stores header tokens (format, orientation, margins).
type PageSpec struct {
	Size   string    `parser:"@Ident"`
	Params []*Lexeme `parser:"@@*"`
}

// Block is a delimited list of statements.
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement inside a block. Layout commands have typed productions; any
// other identifier-led line parses as a generic Command.
type Statement struct {
	Font       *FontCommand    `parser:"  @@"`
	Text       *TextCommand    `parser:"| @@"`
	List       *ListCommand    `parser:"| @@"`
	NewPage    *NewPageCommand `parser:"| @@"`
	Assignment *Assignment     `parser:"| @@"`
	Command    *Command        `parser:"| @@"`
	Literal    *TextLiteral    `parser:"| @@"`
}

// FontCommand patches the current font: `font [family] [emphasis] [size]`.
type FontCommand struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Args []*FontArg     `parser:"'font' @@*"`
}

// FontArg is either a size (number with optional unit) or a word.
type FontArg struct {
	Size *string `parser:"  @Number"`
	Word *string `parser:"| @Ident"`
}

// TextCommand places a text block: `text [align] "…"… [{ "…" }]`.
type TextCommand struct {
	Pos   lexer.Position  `parser:"" json:"-"`
	Align string         `parser:"'text' @Ident?"`
	Parts []*TextLiteral `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// ListCommand describes `list <kind> [marker] [words…] { items }`.
// The marker is the bullet of an unordered list; words carry the index
// style and alignment.
type ListCommand struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Kind   string         `parser:"'list' @Ident"`
	Marker *ListMarker    `parser:"@@?"`
	Words  []string       `parser:"@Ident*"`
	Block  *Block         `parser:"( Newline* @@ )?"`
}

// ListMarker is a bullet, quoted ("*") or bare (*).
type ListMarker struct {
	Quoted *StringLiteral `parser:"  @String"`
	Bare   *string        `parser:"| @( '*' | '-' | '>' )"`
}

// Value returns the marker text.
func (m *ListMarker) Value() string {
	switch {
	case m == nil:
		return ""
	case m.Quoted != nil:
		return string(*m.Quoted)
	case m.Bare != nil:
		return *m.Bare
	}
	return ""
}

// NewPageCommand starts a new page (`newpage` or `page-break`).
type NewPageCommand struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Keyword string         `parser:"@( 'newpage' | 'page-break' )"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"':' Newline* @@"`
}

// Command is any other instruction; its arguments stay raw lexemes.
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Lexeme      `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// TextLiteral encapsulates raw string statements within blocks.
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value represents generic property values.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
	Array  *ArrayValue    `parser:"| @@"`
}

// ArrayValue captures `[ ... ]` expressions.
type ArrayValue struct {
	Values []*Value `parser:"'[' Newline* ( @@ ( (',' | ';' | Newline+) Newline* @@ )* )? Newline* ']'"`
}

// Strings flattens a value into its string items; scalars yield one item.
func (v *Value) Strings() []string {
	switch {
	case v == nil:
		return nil
	case v.String != nil:
		return []string{string(*v.String)}
	case v.Number != nil:
		return []string{*v.Number}
	case v.Ident != nil:
		return []string{*v.Ident}
	case v.Array != nil:
		var out []string
		for _, item := range v.Array.Values {
			out = append(out, item.Strings()...)
		}
		return out
	}
	return nil
}

// Lexeme captures a single lexical token (used by commands/expressions).
type Lexeme struct {
	Type  string         `json:"type"`
	Value string         `json:"value"`
	Raw   string         `json:"raw"`
	Pos   lexer.Position `json:"-"`
}

// Parse implements participle.Parseable so Lexeme can act as a grammar atom.
func (l *Lexeme) Parse(lex *lexer.PeekingLexer) error {
	tok := lex.Peek()
	if shouldStopArg(tok) {
		return participle.NextMatch
	}

	lexeme, err := consumeLexeme(lex)
	if err != nil {
		return err
	}
	*l = *lexeme
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses DSL content from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses DSL content from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

// consumeLexeme reads the next non-terminating token and converts it to a Lexeme.
func consumeLexeme(lex *lexer.PeekingLexer) (*Lexeme, error) {
	tok := lex.Next()
	if tok.EOF() {
		return nil, participle.NextMatch
	}

	lexeme, err := newLexeme(*tok)
	if err != nil {
		return nil, err
	}
	return &lexeme, nil
}

func shouldStopArg(tok *lexer.Token) bool {
	if tok == nil || tok.EOF() {
		return true
	}
	switch tok.Type {
	case newlineTokenType, rbraceTokenType, lbraceTokenType:
		return true
	case symbolTokenType:
		return tok.Value == ";"
	default:
		return false
	}
}

func newLexeme(tok lexer.Token) (Lexeme, error) {
	name, ok := tokenNames[tok.Type]
	if !ok {
		name = fmt.Sprintf("#%d", tok.Type)
	}
	val := tok.Value
	if tok.Type == stringTokenType {
		unquoted, err := strconv.Unquote(tok.Value)
		if err != nil {
			return Lexeme{}, err
		}
		val = unquoted
	}

	return Lexeme{
		Type:  name,
		Value: val,
		Raw:   tok.Value,
		Pos:   tok.Pos,
	}, nil
}

func invertSymbols(symbols map[string]lexer.TokenType) map[lexer.TokenType]string {
	out := make(map[lexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		out[tt] = name
	}
	return out
}

func mustTokenType(name string) lexer.TokenType {
	symbols := dslLexer.Symbols()
	tt, ok := symbols[name]
	if !ok {
		panic(fmt.Sprintf("token %s not defined", name))
	}
	return tt
}
