package canvasrenderer

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/leasap/fonts"
	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/renderer"
)

// Renderer draws layout documents via github.com/tdewolff/canvas.
// canvas 内部以毫米为单位，渲染器在边界做 in↔mm 换算。
type Renderer struct {
	// injected resources, keyed by fonts.Name(family, emphasis)
	fontBlobs map[string][]byte
	// read failures of injected font paths, reported on first use
	fontErrs  map[string]error

	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts overrides embedded faces, keyed like "times-bold".
	Fonts map[string]Resource
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer using the embedded faces.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font resources.
// Unreadable font paths are reported when the face is first used.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontErrs:     map[string]error{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, err := os.ReadFile(res.Path)
			if err != nil {
				r.fontErrs[name] = fmt.Errorf("读取字体资源 %s 失败: %w", name, err)
			}
			r.fontBlobs[name] = data
		}
	}
	return r
}

// Render renders the document into a PDF byte slice.
func (r *Renderer) Render(doc *layout.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	width, height := layout.InToMm(doc.Width), layout.InToMm(doc.Height)
	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	keywords := strings.Join(doc.Meta.Keywords, ", ")
	writer.SetInfo(doc.Meta.Title, doc.Meta.Subject, keywords, doc.Meta.Author, doc.Meta.Creator)
	for i, page := range doc.Pages {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		for _, tb := range page.Texts {
			if err := r.drawTextBox(ctx, tb); err != nil {
				return nil, err
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：width 与返回的行宽均为英寸；字体面以 pt 创建，度量结果为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontConfig) ([]layout.TextLine, error) {
	face, err := r.fontFace(font)
	if err != nil {
		return nil, err
	}
	return renderer.WrapLines(content, width, inchMeasurer{face}), nil
}

// inchMeasurer reports canvas widths in inches.
type inchMeasurer struct{ face *canvas.FontFace }

func (m inchMeasurer) TextWidth(s string) float64 { return m.face.TextWidth(s) / layout.MmPerIn }

// drawTextBox draws one line per baseline, starting at tb.Y.
func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	face, err := r.fontFace(tb.Font)
	if err != nil {
		return err
	}

	// 处理水平对齐：center 以 X 为中心，right 贴齐 X+MaxWidth。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch tb.Align {
	case layout.AlignCenter:
		textAlign = canvas.Center
		anchorX = tb.X
	case layout.AlignRight:
		textAlign = canvas.Right
		anchorX = tb.X + tb.MaxWidth
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	baseline := tb.Y
	for i, line := range tb.Lines {
		if tb.Align == layout.AlignJustify && i < len(tb.Lines)-1 {
			drawJustified(ctx, face, tb.X, baseline, tb.MaxWidth, line.Content)
		} else {
			textLine := canvas.NewTextLine(face, line.Content, textAlign)
			ctx.DrawText(layout.InToMm(anchorX), layout.InToMm(baseline), textLine)
		}
		baseline += tb.LineHeight
	}
	return nil
}

func drawJustified(ctx *canvas.Context, face *canvas.FontFace, x, y, width float64, line string) {
	words := strings.Fields(line)
	if len(words) < 2 {
		ctx.DrawText(layout.InToMm(x), layout.InToMm(y), canvas.NewTextLine(face, line, canvas.Left))
		return
	}
	m := inchMeasurer{face}
	total := 0.0
	for _, w := range words {
		total += m.TextWidth(w)
	}
	gap := (width - total) / float64(len(words)-1)
	for _, w := range words {
		ctx.DrawText(layout.InToMm(x), layout.InToMm(y), canvas.NewTextLine(face, w, canvas.Left))
		x += m.TextWidth(w) + gap
	}
}

func (r *Renderer) fontFace(font layout.FontConfig) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(font.SizePt, canvas.Black, style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontConfig) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fonts.Name(font.Family, font.Emphasis)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := fontStyle(font)
	data, err := r.loadFontBytes(font)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily(key)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", key, err)
	}
	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

func (r *Renderer) loadFontBytes(font layout.FontConfig) ([]byte, error) {
	key := fonts.Name(font.Family, font.Emphasis)
	if err := r.fontErrs[key]; err != nil {
		return nil, err
	}
	if blob, ok := r.fontBlobs[key]; ok {
		if len(blob) == 0 {
			return nil, fmt.Errorf("字体资源 %s 为空", key)
		}
		return blob, nil
	}
	return fonts.Load(font.Family, font.Emphasis)
}

func fontStyle(font layout.FontConfig) canvas.FontStyle {
	style := canvas.FontRegular
	if font.IsBold() {
		style = canvas.FontBold
	}
	if font.IsItalic() {
		style |= canvas.FontItalic
	}
	return style
}
