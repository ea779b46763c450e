// Package textrenderer exports a laid-out document as plain text, one
// wrapped line per row and pages separated by form feeds.
package textrenderer

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/renderer"
)

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Column is the width of one character cell in inches (12pt Courier).
const Column = 0.1

// Renderer wraps text on a fixed character grid.
type Renderer struct{}

// NewRenderer returns a plain-text renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// LayoutLines wraps content to as many columns as fit in width.
// Font size and emphasis do not change the grid.
func (r *Renderer) LayoutLines(content string, width float64, _ layout.FontConfig) ([]layout.TextLine, error) {
	return renderer.WrapLines(content, width, renderer.MonoMeasurer(Column)), nil
}

// Render writes every line at its column: left margin is column zero,
// nested list indentation is kept and centered/right text is padded.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var buf bytes.Buffer
	for i, page := range doc.Pages {
		if i > 0 {
			buf.WriteString("\f\n")
		}
		row := 0.0
		for _, tb := range page.Texts {
			// 英寸位置换算为空行数，保留段落之间的空白
			if row > 0 && tb.LineHeight > 0 {
				for n := int(math.Round((tb.Y - row) / tb.LineHeight)); n > 0; n-- {
					buf.WriteByte('\n')
				}
			}
			for _, line := range tb.Lines {
				buf.WriteString(strings.Repeat(" ", indent(doc, tb, line)))
				buf.WriteString(line.Content)
				buf.WriteByte('\n')
			}
			row = tb.Y + tb.Height
		}
	}
	return buf.Bytes(), nil
}

func indent(doc *layout.Document, tb layout.TextBox, line layout.TextLine) int {
	x := tb.X - doc.Margin.Left
	width := float64(utf8.RuneCountInString(line.Content)) * Column
	switch tb.Align {
	case layout.AlignCenter:
		x -= width / 2
	case layout.AlignRight:
		x += tb.MaxWidth - width
	}
	if x <= 0 {
		return 0
	}
	return int(math.Round(x / Column))
}
