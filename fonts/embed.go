// Package fonts maps the engine's font families onto embedded Latin Modern
// faces, so vector backends can measure and draw without system fonts.
package fonts

import (
	"fmt"

	"github.com/go-fonts/latin-modern/lmmono10italic"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmmonolt10bold"
	"github.com/go-fonts/latin-modern/lmmonolt10boldoblique"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10boldoblique"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"

	"github.com/ByLCY/leasap/layout"
)

// 按 family → emphasis 索引的字体数据；times/helvetica/courier 分别对应
// Latin Modern Roman / Sans / Mono。
var faces = map[layout.Family]map[layout.Emphasis][]byte{
	layout.Times: {
		layout.Normal:     lmroman10regular.TTF,
		layout.Bold:       lmroman10bold.TTF,
		layout.Italic:     lmroman10italic.TTF,
		layout.BoldItalic: lmroman10bolditalic.TTF,
	},
	layout.Helvetica: {
		layout.Normal:     lmsans10regular.TTF,
		layout.Bold:       lmsans10bold.TTF,
		layout.Italic:     lmsans10oblique.TTF,
		layout.BoldItalic: lmsans10boldoblique.TTF,
	},
	layout.Courier: {
		layout.Normal:     lmmono10regular.TTF,
		layout.Bold:       lmmonolt10bold.TTF,
		layout.Italic:     lmmono10italic.TTF,
		layout.BoldItalic: lmmonolt10boldoblique.TTF,
	},
}

// Name returns a stable face name such as "times-bold", used as a cache key.
func Name(family layout.Family, emphasis layout.Emphasis) string {
	return string(family) + "-" + string(emphasis)
}

// Load 返回指定字体族与样式的 TTF 数据。
func Load(family layout.Family, emphasis layout.Emphasis) ([]byte, error) {
	styles, ok := faces[family]
	if !ok {
		return nil, fmt.Errorf("fonts: no embedded face for family %q", family)
	}
	data, ok := styles[emphasis]
	if !ok {
		return nil, fmt.Errorf("fonts: no embedded %s face for family %q", emphasis, family)
	}
	return data, nil
}
