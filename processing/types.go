// Package processing builds language-model prompts from extracted page text
// and turns the replies into questionnaires and summaries.
package processing

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownService reports a service other than questionnaire or summary.
	ErrUnknownService = errors.New("processing: unknown service")
	// ErrUnknownKind reports an unrecognized answer or summary kind.
	ErrUnknownKind = errors.New("processing: unknown kind")
	// ErrNoContent is returned when there is no text to send.
	ErrNoContent = errors.New("processing: no content")
)

// NumChoices is the number of choices requested per choice-bearing question.
const NumChoices = 4

// Service is the operation performed on a document.
type Service string

const (
	ServiceQuestionnaire Service = "questionnaire"
	ServiceSummary       Service = "summary"
)

// Title is the heading printed for the service.
func (s Service) Title() string {
	switch s {
	case ServiceQuestionnaire:
		return "Questionnaire"
	case ServiceSummary:
		return "Summary"
	}
	return ""
}

// ParseService accepts the service names case-insensitively, including the
// CREATEQUESTIONAIRE and SUMMARIZE spellings of saved results.
func ParseService(v string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "questionnaire", "quiz", "createquestionaire", "createquestionnaire":
		return ServiceQuestionnaire, nil
	case "summary", "summarize":
		return ServiceSummary, nil
	}
	return "", errors.Wrapf(ErrUnknownService, "%q", v)
}

// AnswerKind is the kind of answer a question expects.
type AnswerKind string

const (
	Single   AnswerKind = "single"
	Multiple AnswerKind = "multiple"
	Boolean  AnswerKind = "boolean"
	Essay    AnswerKind = "essay"
)

// HasChoices reports whether questions of this kind carry lettered choices.
func (k AnswerKind) HasChoices() bool { return k == Single || k == Multiple }

// ParseAnswerKind accepts the kind names case-insensitively.
func ParseAnswerKind(v string) (AnswerKind, error) {
	switch k := AnswerKind(strings.ToLower(strings.TrimSpace(v))); k {
	case Single, Multiple, Boolean, Essay:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "answer kind %q", v)
}

// UnmarshalText normalizes decoded kinds ("SINGLE", " Essay ") so saved
// results and config files compare equal to the constants. An empty value
// stays empty.
func (k *AnswerKind) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*k = ""
		return nil
	}
	parsed, err := ParseAnswerKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SummaryKind selects a paragraph or a bulleted summary.
type SummaryKind string

const (
	Paragraph SummaryKind = "paragraph"
	Bullet    SummaryKind = "bullet"
)

// ParseSummaryKind accepts "paragraph" and "bullet" ("bullets" too).
func ParseSummaryKind(v string) (SummaryKind, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "paragraph":
		return Paragraph, nil
	case "bullet", "bullets":
		return Bullet, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "summary kind %q", v)
}

// UnmarshalText normalizes decoded summary kinds; empty stays empty.
func (k *SummaryKind) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*k = ""
		return nil
	}
	parsed, err := ParseSummaryKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Question is one parsed questionnaire item. Answers index into Choices;
// boolean questions store 1 for true and 0 for false.
type Question struct {
	Index   int        `json:"questionIndex"`
	Text    string     `json:"question"`
	Choices []string   `json:"choices"`
	Kind    AnswerKind `json:"typeOfAnswer"`
	Answers []int      `json:"answers"`
}

// Questionnaire is an ordered list of questions.
type Questionnaire []Question

// Result is the outcome of a processing run, ready for the assembler.
type Result struct {
	Service       Service       `json:"service"`
	Questionnaire Questionnaire `json:"questionnaire,omitempty"`
	Summary       string        `json:"summary,omitempty"`
}

// QuestionnaireConfig configures question generation.
type QuestionnaireConfig struct {
	Kind         AnswerKind `yaml:"kind"`
	NumQuestions int        `yaml:"num_questions"`
}

// SummaryConfig configures summary generation.
type SummaryConfig struct {
	Kind     SummaryKind `yaml:"kind"`
	MaxWords int         `yaml:"max_words"`
}

// Defaults match the values the form starts with.
var (
	DefaultQuestionnaire = QuestionnaireConfig{Kind: Single, NumQuestions: 3}
	DefaultSummary       = SummaryConfig{Kind: Paragraph, MaxWords: 80}
)
