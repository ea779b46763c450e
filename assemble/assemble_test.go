package assemble

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/processing"
	textrenderer "github.com/ByLCY/leasap/renderer/text"
)

func build(t *testing.T, res processing.Result) *layout.Document {
	t.Helper()
	doc, err := BuildDocument(res, Options{Engine: layout.Options{Typesetter: textrenderer.NewRenderer()}})
	require.NoError(t, err)
	return doc
}

func contents(texts []layout.TextBox) []string {
	out := make([]string, 0, len(texts))
	for _, tb := range texts {
		out = append(out, tb.Content)
	}
	return out
}

func single(text string, answer int) processing.Question {
	return processing.Question{
		Text:    text,
		Kind:    processing.Single,
		Choices: []string{"w", "x", "y", "z"},
		Answers: []int{answer},
	}
}

func TestQuestionnaireWithAnswerKey(t *testing.T) {
	doc := build(t, processing.Result{
		Service:       processing.ServiceQuestionnaire,
		Questionnaire: processing.Questionnaire{single("q1", 0), single("q2", 1), single("q3", 2)},
	})
	require.Equal(t, 2, doc.PageCount())

	first := doc.Pages[0].Texts
	require.Equal(t, AppTitle, first[0].Content)
	require.Equal(t, layout.AlignCenter, first[0].Align)
	require.Equal(t, layout.FontConfig{Family: layout.Times, Emphasis: layout.Bold, SizePt: 16}, first[0].Font)
	require.Equal(t, "Questionnaire", first[1].Content)
	require.Equal(t, layout.BoldItalic, first[1].Font.Emphasis)

	body := contents(first[2:])
	require.Equal(t, []string{
		"1. q1", "a. w", "b. x", "c. y", "d. z",
		"2. q2", "a. w", "b. x", "c. y", "d. z",
		"3. q3", "a. w", "b. x", "c. y", "d. z",
	}, body)
	require.InDelta(t, 1.3, first[3].X, 1e-9)

	second := doc.Pages[1].Texts
	require.Equal(t, []string{"ANSWERS", "1. A", "2. B", "3. C"}, contents(second))
	require.Equal(t, layout.Bold, second[0].Font.Emphasis)
	require.Equal(t, layout.Normal, second[1].Font.Emphasis)
	require.InDelta(t, 1.0, second[0].Y, 1e-9)
}

func TestQuestionnaireMixedKinds(t *testing.T) {
	doc := build(t, processing.Result{
		Service: processing.ServiceQuestionnaire,
		Questionnaire: processing.Questionnaire{
			{Text: "explain", Kind: processing.Essay},
			{Text: "sky is blue", Kind: processing.Boolean, Answers: []int{1}},
			{Text: "pick", Kind: processing.Multiple, Choices: []string{"a1", "a2"}, Answers: []int{0, 1}},
			{Text: "no answer", Kind: processing.Boolean},
		},
	})
	require.Equal(t, []string{"1. explain", "2. sky is blue", "3. pick", "a. a1", "b. a2", "4. no answer"}, contents(doc.Pages[0].Texts[2:]))
	require.Equal(t, []string{"ANSWERS", "1. True", "2. A,B", "3. "}, contents(doc.Pages[1].Texts))
}

func TestEssayOnlyHasNoAnswerPage(t *testing.T) {
	doc := build(t, processing.Result{
		Service:       processing.ServiceQuestionnaire,
		Questionnaire: processing.Questionnaire{{Text: "explain", Kind: processing.Essay}},
	})
	require.Equal(t, 1, doc.PageCount())
}

func TestBulletSummary(t *testing.T) {
	doc := build(t, processing.Result{Service: processing.ServiceSummary, Summary: "* first point* second point* third point"})
	texts := doc.Pages[0].Texts
	require.Equal(t, "Summary", texts[1].Content)
	require.Equal(t, []string{"* first point", "* second point", "* third point"}, contents(texts[2:]))
}

func TestParagraphSummary(t *testing.T) {
	doc := build(t, processing.Result{Service: processing.ServiceSummary, Summary: "Plants make sugar from light."})
	texts := doc.Pages[0].Texts
	require.Len(t, texts, 3)
	require.Equal(t, "Plants make sugar from light.", texts[2].Content)
	require.Equal(t, layout.Normal, texts[2].Font.Emphasis)
}

func TestBuildDocumentErrors(t *testing.T) {
	_, err := BuildDocument(processing.Result{Service: "translate"}, Options{Engine: layout.Options{Typesetter: textrenderer.NewRenderer()}})
	require.True(t, errors.Is(err, processing.ErrUnknownService))

	_, err = BuildDocument(processing.Result{Service: processing.ServiceSummary}, Options{
		Page:   layout.Config{Format: "tabloid"},
		Engine: layout.Options{Typesetter: textrenderer.NewRenderer()},
	})
	require.True(t, errors.Is(err, layout.ErrConfig))
}
