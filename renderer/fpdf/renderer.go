// Package fpdfrenderer measures and draws text with the PDF core fonts
// (Times, Helvetica, Courier) through codeberg.org/go-pdf/fpdf.
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/renderer"
)

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the fpdf renderer.
type Options struct {
	// Compress enables stream compression in the output.
	Compress bool
	// CreationDate is stamped into the PDF info; zero keeps output reproducible.
	CreationDate time.Time
}

// Renderer measures text with core font metrics and writes PDFs in inches.
// One Renderer may serve several documents; calls are serialized.
type Renderer struct {
	opts Options

	mu      sync.Mutex
	measure *fpdf.Fpdf
	tr      func(string) string
}

// NewRenderer returns a renderer with default options.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions returns a renderer with the given options.
func NewRendererWithOptions(opts Options) *Renderer {
	measure := newPDF(layout.Size{Width: 8.5, Height: 11})
	return &Renderer{
		opts:    opts,
		measure: measure,
		// 核心字体使用 cp1252 编码，UTF-8 文本需先转换
		tr: measure.UnicodeTranslatorFromDescriptor(""),
	}
}

func newPDF(size layout.Size) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// LayoutLines 实现 layout.Typesetter：用核心字体度量进行贪心换行，宽度单位为英寸。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontConfig) ([]layout.TextLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	family, style, err := coreFont(font)
	if err != nil {
		return nil, err
	}
	r.measure.SetFont(family, style, font.SizePt)
	if r.measure.Err() {
		return nil, fmt.Errorf("fpdf: selecting font %s %q: %w", family, style, r.measure.Error())
	}
	m := renderer.MeasureFunc(func(s string) float64 {
		return r.measure.GetStringWidth(r.tr(s))
	})
	return renderer.WrapLines(content, width, m), nil
}

// Render writes every page of doc into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pdf := newPDF(layout.Size{Width: doc.Width, Height: doc.Height})
	pdf.SetCompression(r.opts.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.opts.CreationDate)
	pdf.SetModificationDate(r.opts.CreationDate)
	r.applyMeta(pdf, doc.Meta)

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, tb := range page.Texts {
			if err := r.drawTextBox(pdf, tb); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
}

// drawTextBox draws each line on its baseline; Y is the first baseline.
func (r *Renderer) drawTextBox(pdf *fpdf.Fpdf, tb layout.TextBox) error {
	family, style, err := coreFont(tb.Font)
	if err != nil {
		return err
	}
	pdf.SetFont(family, style, tb.Font.SizePt)

	y := tb.Y
	for i, line := range tb.Lines {
		text := r.tr(line.Content)
		width := pdf.GetStringWidth(text)
		switch tb.Align {
		case layout.AlignCenter:
			pdf.Text(tb.X-width/2, y, text)
		case layout.AlignRight:
			pdf.Text(tb.X+tb.MaxWidth-width, y, text)
		case layout.AlignJustify:
			// 最后一行保持左对齐
			if i == len(tb.Lines)-1 {
				pdf.Text(tb.X, y, text)
			} else {
				r.drawJustified(pdf, tb.X, y, tb.MaxWidth, line.Content)
			}
		default:
			pdf.Text(tb.X, y, text)
		}
		y += tb.LineHeight
	}
	if pdf.Err() {
		return fmt.Errorf("fpdf: drawing %q: %w", tb.Content, pdf.Error())
	}
	return nil
}

// drawJustified spreads the words of one line across width.
func (r *Renderer) drawJustified(pdf *fpdf.Fpdf, x, y, width float64, line string) {
	words := strings.Fields(line)
	if len(words) < 2 {
		pdf.Text(x, y, r.tr(line))
		return
	}
	total := 0.0
	for i, w := range words {
		words[i] = r.tr(w)
		total += pdf.GetStringWidth(words[i])
	}
	gap := (width - total) / float64(len(words)-1)
	for _, w := range words {
		pdf.Text(x, y, w)
		x += pdf.GetStringWidth(w) + gap
	}
}

// coreFont maps a FontConfig onto an fpdf core family and style string.
func coreFont(font layout.FontConfig) (string, string, error) {
	var family string
	switch font.Family {
	case layout.Times:
		family = "Times"
	case layout.Helvetica:
		family = "Helvetica"
	case layout.Courier:
		family = "Courier"
	default:
		return "", "", fmt.Errorf("%w: unknown font family %q", layout.ErrConfig, font.Family)
	}
	style := ""
	if font.IsBold() {
		style += "B"
	}
	if font.IsItalic() {
		style += "I"
	}
	return family, style, nil
}
