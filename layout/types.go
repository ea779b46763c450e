package layout

// 该文件定义布局结果，供排版引擎、渲染器与调试 JSON 共用。
// All coordinates and lengths are in inches, origin at the top-left corner.

// Document holds the pages produced by an Engine.
type Document struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Margin Margins      `json:"margin"`
	Pages  []Page       `json:"pages"`
	Meta   DocumentMeta `json:"meta"`
}

// Page records the text placed on one page in placement order.
type Page struct {
	Texts []TextBox `json:"texts"`
}

// TextBox is one placement call: a text wrapped into lines at an anchor.
//
// X is the anchor passed to the drawing capability: the left edge for left
// and justify, the horizontal center for center. Right-aligned boxes are
// flushed against X+MaxWidth. Y is the baseline of the first line.
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	MaxWidth   float64    `json:"maxWidth"`
	Align      Align      `json:"align,omitempty"`
	Font       FontConfig `json:"font"`
	LineHeight float64    `json:"lineHeight"`
	Lines      []TextLine `json:"lines"`
	Height     float64    `json:"height"`
}

// TextLine 表示排版后的一行文本内容及其宽度。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// PageCount returns the number of pages, counting the one opened at construction.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Texts returns every placed box in document order.
func (d *Document) Texts() []TextBox {
	if d == nil {
		return nil
	}
	var out []TextBox
	for _, p := range d.Pages {
		out = append(out, p.Texts...)
	}
	return out
}
