package processing

import "fmt"

const (
	startMarker = "=*START OF TEXT*="
	endMarker   = "=*END OF TEXT*="

	preamble = `Take note of the following text. The text is long so I'll tell you what to do with text after the "` +
		endMarker + `" phase. Simply reply with "RECEIVED" after you receive each part of the text. I'll send you the first part of the text`
)

// Payloads splits the conversation into user messages: the first carries
// the preamble and start marker, the last the end marker and the action.
// A single segment yields one payload holding both.
func Payloads(segments []string, action string) []string {
	if len(segments) == 0 {
		return nil
	}
	payloads := make([]string, 0, len(segments))
	first := preamble + "\n" + startMarker + "\n" + segments[0]
	if len(segments) == 1 {
		return append(payloads, first+"\n"+endMarker+"\n"+action)
	}
	payloads = append(payloads, first)
	payloads = append(payloads, segments[1:len(segments)-1]...)
	last := segments[len(segments)-1] + "\n" + endMarker + "\n" + action
	return append(payloads, last)
}

// QuestionnaireAction is the instruction sent after the text.
func QuestionnaireAction(cfg QuestionnaireConfig) string {
	const tail = ` Append the answers after all of the questions and choices are enumerated. Put "ANSWERS:" as an indicator for the answers. If the questions refer to the scenarios discussed in the text, give context to the question. Exclude examples from the text in the questions.`
	n := cfg.NumQuestions
	switch cfg.Kind {
	case Single:
		return fmt.Sprintf("Based on the text I gave you, create %d questions with %d multiple choices.", n, NumChoices) + tail
	case Multiple:
		return fmt.Sprintf("Based on the text I gave you, create %d multiple-answer questions with %d multiple choices. Make sure that each question has at least 2 answers.", n, NumChoices) + tail
	case Boolean:
		return fmt.Sprintf("Based on the text I gave you, create %d questions with true or false choices.", n) + tail
	default:
		return fmt.Sprintf("Based on the text I gave you, create %d questions.", n)
	}
}

// SummaryAction is the instruction sent after the text.
func SummaryAction(cfg SummaryConfig) string {
	if cfg.Kind == Bullet {
		return fmt.Sprintf(`Based on the text I gave you, create a bulleted summary such that it will not exceed %d words. Don't put "summary" at the start of the text. Use "*" as bullet points.`, cfg.MaxWords)
	}
	return fmt.Sprintf(`Based on the text that I gave, create a summary such that it will not exceed %d words. Don't put "summary" at the start of the text.`, cfg.MaxWords)
}
