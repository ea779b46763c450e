package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/leasap/binding"
	"github.com/ByLCY/leasap/dsl"
)

// Build runs a layout script through an Engine and returns the document.
// Text literals are interpolated against data (see binding.Interpolate).
func Build(doc *dsl.Document, data any, opts Options) (*Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("layout: empty script")
	}
	section := firstPage(doc)
	if section == nil {
		return nil, fmt.Errorf("layout: script has no page section")
	}
	if section.Block == nil {
		return nil, fmt.Errorf("layout: page section has no content")
	}

	cfg, legacy, err := resolvePageSpec(section.Spec)
	if err != nil {
		return nil, err
	}
	if legacy {
		opts.PageCursor = PageCursorLegacy
	}
	engine, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}
	engine.SetMeta(collectMeta(doc))

	r := &scriptRunner{engine: engine, data: data}
	if err := r.processBlock(section.Block); err != nil {
		return nil, err
	}
	return engine.Output(), nil
}

type scriptRunner struct {
	engine *Engine
	data   any
}

// processBlock 依次执行页面内的命令：font、text、list、newpage。
func (r *scriptRunner) processBlock(block *dsl.Block) error {
	for _, stmt := range block.Statements {
		switch {
		case stmt.Literal != nil:
			if err := r.engine.AppendText(r.interpolate(string(stmt.Literal.Value)), AlignDefault); err != nil {
				return err
			}
		case stmt.Font != nil:
			if err := r.handleFont(stmt.Font); err != nil {
				return fmt.Errorf("line %d: font: %w", stmt.Font.Pos.Line, err)
			}
		case stmt.Text != nil:
			if err := r.handleText(stmt.Text); err != nil {
				return fmt.Errorf("line %d: text: %w", stmt.Text.Pos.Line, err)
			}
		case stmt.List != nil:
			list, align, err := r.buildList(stmt.List)
			if err == nil {
				err = r.engine.AppendList(list, align)
			}
			if err != nil {
				return fmt.Errorf("line %d: list: %w", stmt.List.Pos.Line, err)
			}
		case stmt.NewPage != nil:
			r.engine.AddPageAndFocusThatPage()
		case stmt.Command != nil:
			// 其余命令暂未实现，忽略即可
			r.engine.log.Warn("layout: ignoring unknown script command", "command", stmt.Command.Name, "line", stmt.Command.Pos.Line)
		}
	}
	return nil
}

func (r *scriptRunner) handleFont(cmd *dsl.FontCommand) error {
	var patch FontConfig
	for _, arg := range cmd.Args {
		if arg.Size != nil {
			size, ok := ParseLength(*arg.Size)
			if !ok || size.Value <= 0 {
				return fmt.Errorf("%w: font size %q", ErrConfig, *arg.Size)
			}
			if size.Unit == UnitNone {
				patch.SizePt = size.Value
			} else {
				patch.SizePt = size.ToPT()
			}
			continue
		}
		if arg.Word == nil {
			continue
		}
		if f, err := ParseFamily(*arg.Word); err == nil {
			patch.Family = f
			continue
		}
		em, err := ParseEmphasis(*arg.Word)
		if err != nil {
			return fmt.Errorf("%w: font argument %q", ErrConfig, *arg.Word)
		}
		patch.Emphasis = em
	}
	return r.engine.SetFontConfig(patch)
}

func (r *scriptRunner) handleText(cmd *dsl.TextCommand) error {
	align := AlignDefault
	if cmd.Align != "" {
		a, err := ParseAlign(cmd.Align)
		if err != nil {
			return err
		}
		align = a
	}
	var parts []string
	for _, part := range cmd.Parts {
		parts = append(parts, string(part.Value))
	}
	parts = append(parts, blockLiterals(cmd.Block)...)
	if len(parts) == 0 {
		return fmt.Errorf("text command has no content")
	}
	return r.engine.AppendText(r.interpolate(strings.Join(parts, "\n")), align)
}

// buildList converts `list ordered num {…}` / `list unordered "*" {…}` into
// a List. Nested list commands become nested lists.
func (r *scriptRunner) buildList(cmd *dsl.ListCommand) (*List, Align, error) {
	list := &List{}
	words := cmd.Words
	switch strings.ToLower(cmd.Kind) {
	case "ordered":
		if cmd.Marker != nil {
			return nil, "", fmt.Errorf("%w: ordered list takes no bullet", ErrConfig)
		}
		list.Kind = Ordered
		list.Index = Numeric
		if len(words) > 0 {
			switch strings.ToLower(words[0]) {
			case "num", "numeric", "number":
				words = words[1:]
			case "alpha", "alphabet", "alphabetic":
				list.Index = Alphabetic
				words = words[1:]
			}
		}
	case "unordered":
		list.Kind = Unordered
		list.Bullet = BulletAsterisk
		if cmd.Marker != nil {
			list.Bullet = Bullet(cmd.Marker.Value())
			if !validBullet(list.Bullet) {
				return nil, "", fmt.Errorf("%w: unknown bullet %q", ErrConfig, cmd.Marker.Value())
			}
		}
	default:
		return nil, "", fmt.Errorf("%w: unknown list kind %q", ErrConfig, cmd.Kind)
	}
	align := AlignDefault
	for _, w := range words {
		a, err := ParseAlign(w)
		if err != nil {
			return nil, "", err
		}
		align = a
	}
	if cmd.Block == nil {
		return list, align, nil
	}
	for _, stmt := range cmd.Block.Statements {
		switch {
		case stmt.Literal != nil:
			list.Items = append(list.Items, Text(r.interpolate(string(stmt.Literal.Value))))
		case stmt.List != nil:
			nested, _, err := r.buildList(stmt.List)
			if err != nil {
				return nil, "", err
			}
			list.Items = append(list.Items, nested)
		default:
			return nil, "", fmt.Errorf("line %d: only text and nested lists are allowed inside a list", stmtLine(stmt))
		}
	}
	return list, align, nil
}

// stmtLine reports the source line of a non-literal statement.
func stmtLine(stmt *dsl.Statement) int {
	switch {
	case stmt.Font != nil:
		return stmt.Font.Pos.Line
	case stmt.Text != nil:
		return stmt.Text.Pos.Line
	case stmt.NewPage != nil:
		return stmt.NewPage.Pos.Line
	case stmt.Command != nil:
		return stmt.Command.Pos.Line
	}
	return 0
}

func (r *scriptRunner) interpolate(s string) string {
	if r.data == nil {
		return s
	}
	return binding.Interpolate(s, r.data)
}

func blockLiterals(block *dsl.Block) []string {
	if block == nil {
		return nil
	}
	var out []string
	for _, stmt := range block.Statements {
		if stmt.Literal != nil {
			out = append(out, string(stmt.Literal.Value))
		}
	}
	return out
}

func firstPage(doc *dsl.Document) *dsl.PageSection {
	for _, section := range doc.Sections {
		if section.Page != nil {
			return section.Page
		}
	}
	return nil
}

func collectMeta(doc *dsl.Document) DocumentMeta {
	var meta DocumentMeta
	for _, section := range doc.Sections {
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			values := stmt.Assignment.Value.Strings()
			first := ""
			if len(values) > 0 {
				first = values[0]
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = first
			case "author":
				meta.Author = first
			case "subject":
				meta.Subject = first
			case "creator":
				meta.Creator = first
			case "keywords":
				meta.Keywords = values
			}
		}
	}
	return meta
}

// resolvePageSpec reads `page <format>|custom <w> <h> [orientation]
// [margins normal|narrow|<len>…] [legacy-cursor]`.
func resolvePageSpec(spec dsl.PageSpec) (Config, bool, error) {
	var cfg Config
	legacy := false
	params := spec.Params
	if strings.EqualFold(spec.Size, "custom") {
		if len(params) < 2 {
			return cfg, false, fmt.Errorf("%w: custom page needs width and height", ErrConfig)
		}
		w, okW := ParseLength(params[0].Value)
		h, okH := ParseLength(params[1].Value)
		if !okW || !okH {
			return cfg, false, fmt.Errorf("%w: custom page size %q x %q", ErrConfig, params[0].Raw, params[1].Raw)
		}
		cfg.Size = Size{Width: w.ToIN(), Height: h.ToIN()}
		params = params[2:]
	} else {
		cfg.Format = spec.Size
	}
	cfg.MarginPreset = "normal"

	for i := 0; i < len(params); i++ {
		switch v := strings.ToLower(params[i].Value); v {
		case "p", "portrait", "l", "landscape":
			cfg.Orientation = v
		case "legacy-cursor":
			legacy = true
		case "margins", "margin":
			if i+1 < len(params) && params[i+1].Type == "Ident" {
				cfg.MarginPreset = params[i+1].Value
				i++
				continue
			}
			var vals []float64
			for j := i + 1; j < len(params) && len(vals) < 4; j++ {
				l, ok := ParseLength(params[j].Value)
				if !ok {
					break
				}
				vals = append(vals, l.ToIN())
			}
			m, err := marginsFromValues(vals)
			if err != nil {
				return cfg, false, err
			}
			cfg.MarginPreset = ""
			cfg.Margins = m
			i += len(vals)
		default:
			return cfg, false, fmt.Errorf("%w: unknown page parameter %q", ErrConfig, params[i].Raw)
		}
	}
	return cfg, legacy, nil
}

// marginsFromValues applies CSS shorthand order: top, right, bottom, left.
func marginsFromValues(vals []float64) (Margins, error) {
	switch len(vals) {
	case 1:
		v := vals[0]
		return Margins{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margins{Top: vals[0], Bottom: vals[0], Left: vals[1], Right: vals[1]}, nil
	case 3:
		return Margins{Top: vals[0], Left: vals[1], Right: vals[1], Bottom: vals[2]}, nil
	case 4:
		return Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return Margins{}, fmt.Errorf("%w: margins need 1 to 4 lengths", ErrConfig)
}
