package renderer

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/leasap/layout"
)

// Measurer reports the advance width of a string in the caller's unit.
// *canvas.FontFace satisfies it directly.
type Measurer interface {
	TextWidth(s string) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(s string) float64

func (f MeasureFunc) TextWidth(s string) float64 { return f(s) }

// MonoMeasurer measures every rune with the same advance.
type MonoMeasurer float64

func (m MonoMeasurer) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(m)
}

// WrapLines 贪心换行：优先在空白处断行，单词超过宽度时在词内拆分，
// 显式换行符始终生效。宽度单位与 Measurer 一致。
// 行首/行尾因断行产生的空白会被去掉。
func WrapLines(content string, width float64, m Measurer) []layout.TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	tokens := tokenizeContent(content)
	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		line := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		builder.Reset()
		currentWidth = 0
		if line == "" {
			if force {
				lines = append(lines, layout.TextLine{Content: "", Width: 0})
			}
			return
		}
		lines = append(lines, layout.TextLine{Content: line, Width: m.TextWidth(line)})
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += m.TextWidth(token)
	}

	// wrapped 表示当前行由宽度折行产生（而非显式换行），此时跳过行首空白
	wrapped := false
	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			wrapped = false
			continue
		}
		if builder.Len() == 0 && wrapped && isBlank(token) {
			continue
		}

		tokenWidth := m.TextWidth(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			if isBlank(token) {
				// 空白导致溢出时直接断行，丢弃该空白
				emit(false)
				wrapped = true
				continue
			}
			emit(false)
			wrapped = true
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, m) {
			chunkWidth := m.TextWidth(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
				wrapped = true
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

func isBlank(token string) bool {
	return strings.TrimSpace(token) == ""
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, m Measurer) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if m.TextWidth(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
