package layout

import "log/slog"

// Options configures the engine's collaborators.
type Options struct {
	Typesetter Typesetter
	Logger     *slog.Logger
	PageCursor PageCursor
}

// PageCursor selects where AddPageAndFocusThatPage puts the cursor's y.
type PageCursor int

const (
	// PageCursorTop resets y to the top margin.
	PageCursorTop PageCursor = iota
	// PageCursorLegacy resets y to the right margin, as earlier releases did.
	PageCursorLegacy
)

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// width is in inches; returned line widths are in inches too.
type Typesetter interface {
	LayoutLines(content string, width float64, font FontConfig) ([]TextLine, error)
}
