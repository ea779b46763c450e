package processing

import (
	"regexp"
	"strings"
	"unicode"
)

const answersMarker = "ANSWERS:"

var (
	questionLine = regexp.MustCompile(`^\d+\.`)
	choicePrefix = regexp.MustCompile(`^[A-Za-z]\)`)
	answerNumber = regexp.MustCompile(`(?m)^\s*\d+\.`)
	letterAnswer = regexp.MustCompile(`^([A-Za-z])(?:[).]|$)`)
)

// ParseQuestionnaire reads a model reply into questions of the given kind.
//
// Questions are lines starting with "N."; for single and multiple kinds the
// next numChoices non-empty lines are its choices ("A)" prefixes removed).
// Everything after "ANSWERS:" is split at lines starting with "N." into
// per-question answers; essay replies drop that section. A reply without
// the marker yields questions without answers; answers beyond the last
// question are ignored.
func ParseQuestionnaire(response string, kind AnswerKind, numChoices int) Questionnaire {
	questionPart, answerPart := response, ""
	if i := strings.Index(response, answersMarker); i >= 0 {
		questionPart, answerPart = response[:i], response[i+len(answersMarker):]
	}

	var out Questionnaire
	capturing := 0
	for _, raw := range strings.Split(questionPart, "\n") {
		line := strings.TrimSpace(raw)
		if questionLine.MatchString(line) {
			out = append(out, Question{
				Index: len(out),
				Text:  strings.TrimSpace(questionLine.ReplaceAllString(line, "")),
				Kind:  kind,
			})
			capturing = 0
			if kind.HasChoices() {
				capturing = numChoices
			}
			continue
		}
		if capturing == 0 || line == "" {
			continue
		}
		q := &out[len(out)-1]
		q.Choices = append(q.Choices, strings.TrimSpace(choicePrefix.ReplaceAllString(line, "")))
		capturing--
	}

	if kind == Essay || answerPart == "" {
		return out
	}
	for i, segment := range answerSegments(answerPart) {
		if i >= len(out) {
			break
		}
		out[i].Answers = parseAnswers(segment, kind)
	}
	return out
}

// answerSegments returns the text after each numbered answer line. Text
// before the first number is ignored.
func answerSegments(answerPart string) []string {
	locs := answerNumber.FindAllStringIndex(answerPart, -1)
	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(answerPart)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, strings.TrimSpace(answerPart[loc[1]:end]))
	}
	return segments
}

func parseAnswers(segment string, kind AnswerKind) []int {
	if kind == Boolean {
		if strings.EqualFold(strings.TrimRightFunc(segment, unicode.IsPunct), "true") {
			return []int{1}
		}
		return []int{0}
	}
	// 每行一个答案（"A) ..."），也接受同一行用逗号分隔的 "A, C"
	var answers []int
	for _, line := range strings.Split(segment, "\n") {
		for _, part := range strings.Split(line, ",") {
			m := letterAnswer.FindStringSubmatch(strings.TrimSpace(part))
			if m == nil {
				continue
			}
			answers = append(answers, int(unicode.ToLower(rune(m[1][0]))-'a'))
		}
	}
	return answers
}
