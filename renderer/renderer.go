package renderer

import "github.com/ByLCY/leasap/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF 或纯文本。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}

// Backend measures text for the layout engine and exports the finished
// document with the same font metrics.
type Backend interface {
	layout.Typesetter
	Renderer
}

// Backend names accepted by the CLI and the config file.
const (
	NameFPDF   = "fpdf"
	NameCanvas = "canvas"
	NameText   = "text"
)
