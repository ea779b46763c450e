package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// IndentStep is the horizontal offset of each nested list level, in inches.
const IndentStep = 0.3

// Align is the horizontal alignment of a placement.
type Align string

const (
	AlignDefault Align = ""
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// ParseAlign accepts the alignment names case-insensitively, with start/end
// as aliases of left/right.
func ParseAlign(v string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return AlignDefault, nil
	case "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	case "justify":
		return AlignJustify, nil
	}
	return "", fmt.Errorf("%w: unknown alignment %q", ErrConfig, v)
}

// Cursor is the current write position in inches.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Engine places text top to bottom on a paginated document. It keeps a
// running cursor and delegates line wrapping to a Typesetter.
//
// An Engine is not safe for concurrent use; build one per document.
// Content that runs past the bottom margin is not moved to a new page.
type Engine struct {
	geom       Geometry
	font       FontConfig
	cursor     Cursor
	doc        *Document
	ts         Typesetter
	log        *slog.Logger
	pageCursor PageCursor
}

// New resolves cfg and returns an engine with one empty page and the cursor
// at the top-left corner of the writing space.
func New(cfg Config, opts Options) (*Engine, error) {
	if opts.Typesetter == nil {
		return nil, errors.New("layout: missing Typesetter")
	}
	geom, err := ResolveGeometry(cfg)
	if err != nil {
		return nil, err
	}
	initial, err := cfg.Font.Normalize()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		geom:       geom,
		font:       DefaultFont.Merge(initial),
		cursor:     Cursor{X: geom.Margins.Left, Y: geom.Margins.Top},
		ts:         opts.Typesetter,
		log:        logger,
		pageCursor: opts.PageCursor,
		doc: &Document{
			Width:  geom.Width,
			Height: geom.Height,
			Margin: geom.Margins,
			Pages:  []Page{{}},
		},
	}
	return e, nil
}

// Geometry returns the resolved page geometry.
func (e *Engine) Geometry() Geometry { return e.geom }

// Cursor returns the current write position.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Font returns the active font.
func (e *Engine) Font() FontConfig { return e.font }

// SetMeta replaces the document metadata.
func (e *Engine) SetMeta(meta DocumentMeta) { e.doc.Meta = meta }

// SetFontConfig applies the set fields of patch; unset fields keep their
// current value. Only content appended afterwards uses the new font.
func (e *Engine) SetFontConfig(patch FontConfig) error {
	p, err := patch.Normalize()
	if err != nil {
		return err
	}
	e.font = e.font.Merge(p)
	return nil
}

// AppendText places text across the writing width, followed by one blank
// line, and returns the cursor to the left margin.
func (e *Engine) AppendText(text string, align Align) error {
	align, err := ParseAlign(string(align))
	if err != nil {
		return err
	}
	width := e.geom.WritingWidth()
	x := e.cursor.X
	if align == AlignCenter {
		x = e.geom.Width / 2
	}
	tb, err := e.place(text, x, width, align)
	if err != nil {
		return err
	}
	e.cursor.Y += tb.Height + tb.LineHeight
	e.cursor.X = e.geom.Margins.Left
	return nil
}

// AppendList places a list starting at the current cursor x. Nested lists
// are indented by IndentStep per level. Either the whole list is placed or,
// on error, nothing is.
func (e *Engine) AppendList(list *List, align Align) error {
	align, err := ParseAlign(string(align))
	if err != nil {
		return err
	}
	if list == nil {
		e.log.Warn("layout: skipping nil list")
		return nil
	}
	m := e.mark()
	if err := e.renderList(list, e.cursor.X, align); err != nil {
		e.rollback(m)
		return err
	}
	return nil
}

// AddPageAndFocusThatPage opens a new page and moves the cursor to its
// top-left writing corner.
func (e *Engine) AddPageAndFocusThatPage() {
	e.doc.Pages = append(e.doc.Pages, Page{})
	e.cursor.X = e.geom.Margins.Left
	if e.pageCursor == PageCursorLegacy {
		e.cursor.Y = e.geom.Margins.Right
	} else {
		e.cursor.Y = e.geom.Margins.Top
	}
}

// Output returns the document built so far. The engine keeps ownership of
// the same value, so later appends show up in it.
func (e *Engine) Output() *Document { return e.doc }

func (e *Engine) renderList(list *List, xPos float64, align Align) error {
	switch list.Kind {
	case Ordered:
		return e.renderOrdered(list, xPos, align)
	case Unordered:
		return e.renderUnordered(list, xPos, align)
	default:
		e.log.Warn("layout: skipping list of unknown kind", "kind", int(list.Kind))
		return nil
	}
}

func (e *Engine) renderOrdered(list *List, xPos float64, align Align) error {
	token, ok := firstToken(list.Index)
	if !ok {
		e.log.Warn("layout: skipping ordered list with unknown index style", "index", string(list.Index))
		return nil
	}
	width := e.listWidth(xPos)
	for i, item := range list.Items {
		switch it := item.(type) {
		case Text:
			prefixed := formatToken(list.Index, token) + ". " + string(it)
			if err := e.placeListLine(prefixed, xPos, width, align); err != nil {
				return err
			}
			token++
		case *List:
			if err := e.renderNested(it, xPos, align, i); err != nil {
				return err
			}
		default:
			e.log.Warn("layout: skipping unrecognized list item", "index", i, "type", fmt.Sprintf("%T", item))
		}
	}
	return nil
}

func (e *Engine) renderUnordered(list *List, xPos float64, align Align) error {
	if !validBullet(list.Bullet) {
		e.log.Warn("layout: skipping unordered list with unknown bullet", "bullet", string(list.Bullet))
		return nil
	}
	width := e.listWidth(xPos)
	for i, item := range list.Items {
		switch it := item.(type) {
		case Text:
			if err := e.placeListLine(string(list.Bullet)+" "+string(it), xPos, width, align); err != nil {
				return err
			}
		case *List:
			if err := e.renderNested(it, xPos, align, i); err != nil {
				return err
			}
		default:
			e.log.Warn("layout: skipping unrecognized list item", "index", i, "type", fmt.Sprintf("%T", item))
		}
	}
	return nil
}

func (e *Engine) renderNested(list *List, xPos float64, align Align, index int) error {
	if list == nil {
		e.log.Warn("layout: skipping nil nested list", "index", index)
		return nil
	}
	return e.renderList(list, xPos+IndentStep, align)
}

// listWidth shrinks the writing width by the indentation already consumed.
func (e *Engine) listWidth(xPos float64) float64 {
	return e.geom.WritingWidth() - (xPos - e.geom.Margins.Left)
}

func (e *Engine) placeListLine(text string, xPos, width float64, align Align) error {
	tb, err := e.place(text, xPos, width, align)
	if err != nil {
		return err
	}
	e.cursor.Y += tb.Height
	return nil
}

// place wraps text and records it on the current page at (x, cursor.y).
// The cursor is left untouched.
func (e *Engine) place(text string, x, width float64, align Align) (TextBox, error) {
	lines, err := e.ts.LayoutLines(text, width, e.font)
	if err != nil {
		return TextBox{}, fmt.Errorf("layout: wrapping %q: %w", abbreviate(text), err)
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: ""}}
	}
	lh := e.font.LineHeight()
	tb := TextBox{
		Content:    text,
		X:          x,
		Y:          e.cursor.Y,
		MaxWidth:   width,
		Align:      align,
		Font:       e.font,
		LineHeight: lh,
		Lines:      lines,
		Height:     float64(len(lines)) * lh,
	}
	page := &e.doc.Pages[len(e.doc.Pages)-1]
	page.Texts = append(page.Texts, tb)
	return tb, nil
}

type mark struct {
	cursor Cursor
	texts  int
}

func (e *Engine) mark() mark {
	return mark{cursor: e.cursor, texts: len(e.doc.Pages[len(e.doc.Pages)-1].Texts)}
}

func (e *Engine) rollback(m mark) {
	page := &e.doc.Pages[len(e.doc.Pages)-1]
	page.Texts = page.Texts[:m.texts]
	e.cursor = m.cursor
}

func abbreviate(s string) string {
	const limit = 32
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}
