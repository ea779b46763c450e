// Package assemble turns a processing result into layout engine calls.
package assemble

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/processing"
)

// AppTitle is the heading of every generated document.
const AppTitle = "LEarner ASsistance APplication"

// Options configures the page and the engine collaborators.
type Options struct {
	Page   layout.Config
	Engine layout.Options
}

// DefaultPage is a letter page in portrait with one-inch margins.
var DefaultPage = layout.Config{Format: "letter", Orientation: "portrait", MarginPreset: "normal"}

// BuildDocument lays out res: the title block, then the questionnaire (with
// an answer key on a second page) or the summary.
func BuildDocument(res processing.Result, opts Options) (*layout.Document, error) {
	if res.Service.Title() == "" {
		return nil, errors.Wrapf(processing.ErrUnknownService, "%q", res.Service)
	}
	page := opts.Page
	if page == (layout.Config{}) {
		page = DefaultPage
	}
	e, err := layout.New(page, opts.Engine)
	if err != nil {
		return nil, err
	}
	e.SetMeta(layout.DocumentMeta{Title: res.Service.Title(), Creator: AppTitle})

	b := &builder{e: e}
	b.font(layout.FontConfig{SizePt: 16, Emphasis: layout.Bold})
	b.text(AppTitle, layout.AlignCenter)
	b.font(layout.FontConfig{SizePt: 12, Emphasis: layout.BoldItalic})
	b.text(res.Service.Title(), layout.AlignCenter)

	switch res.Service {
	case processing.ServiceQuestionnaire:
		b.questionnaire(res.Questionnaire)
	case processing.ServiceSummary:
		b.summary(res.Summary)
	}
	if b.err != nil {
		return nil, b.err
	}
	return e.Output(), nil
}

// builder stops at the first engine error.
type builder struct {
	e   *layout.Engine
	err error
}

func (b *builder) font(patch layout.FontConfig) {
	if b.err == nil {
		b.err = b.e.SetFontConfig(patch)
	}
}

func (b *builder) text(s string, align layout.Align) {
	if b.err == nil {
		b.err = b.e.AppendText(s, align)
	}
}

func (b *builder) list(l *layout.List) {
	if b.err == nil {
		b.err = b.e.AppendList(l, layout.AlignDefault)
	}
}

func (b *builder) questionnaire(qs processing.Questionnaire) {
	questions := layout.NewOrdered(layout.Numeric)
	answers := layout.NewOrdered(layout.Numeric)
	needsKey := false
	for _, q := range qs {
		questions.Add(layout.Text(q.Text))
		if q.Kind.HasChoices() {
			questions.Add(layout.NewOrdered(layout.Alphabetic, layout.Texts(q.Choices...)...))
		}
		// essay 题不进入答案页，编号会因此错位
		if q.Kind == processing.Essay {
			continue
		}
		needsKey = true
		answers.Add(layout.Text(answerKey(q)))
	}

	b.font(layout.FontConfig{SizePt: 12, Emphasis: layout.Normal})
	b.list(questions)
	if !needsKey {
		return
	}
	b.e.AddPageAndFocusThatPage()
	b.font(layout.FontConfig{Emphasis: layout.Bold})
	b.text("ANSWERS", layout.AlignDefault)
	b.font(layout.FontConfig{Emphasis: layout.Normal})
	b.list(answers)
}

// answerKey renders "True"/"False" for boolean questions and letters
// otherwise, joined with commas.
func answerKey(q processing.Question) string {
	parts := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		if q.Kind == processing.Boolean {
			if a != 0 {
				parts = append(parts, "True")
			} else {
				parts = append(parts, "False")
			}
			continue
		}
		parts = append(parts, string(rune('A'+a)))
	}
	return strings.Join(parts, ",")
}

func (b *builder) summary(s string) {
	b.font(layout.FontConfig{SizePt: 12, Emphasis: layout.Normal})
	if !strings.Contains(s, "*") {
		b.text(s, layout.AlignDefault)
		return
	}
	var items []string
	for _, part := range strings.Split(s, "*") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	b.list(layout.NewUnordered(layout.BulletAsterisk, layout.Texts(items...)...))
}
