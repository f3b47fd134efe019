package grading

import (
	"context"
	"strings"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
)

// AnswerPolicy holds the concrete matching rules for objective questions.
// The strategy only requires a fractional score plus optional detail; the
// rules themselves are an externally supplied grading policy.
type AnswerPolicy interface {
	Match(question *entity.Question, answer map[string]interface{}) (score float64, detail map[string]interface{})
}

type ObjectiveStrategy struct {
	policy AnswerPolicy
}

func NewObjectiveStrategy(policy AnswerPolicy) *ObjectiveStrategy {
	if policy == nil {
		policy = DefaultAnswerPolicy{}
	}
	return &ObjectiveStrategy{policy: policy}
}

func (s *ObjectiveStrategy) Grade(ctx context.Context, in Input) *Result {
	frac, detail := s.policy.Match(in.Question, in.Answer)
	return &Result{
		Score:     frac * 100,
		Objective: detail,
	}
}

// DefaultAnswerPolicy compares the submitted answer against the expected key
// in the question meta: exact match for MCQ choices, normalized string match
// for short text, chord-normalized match for shortcut keys.
type DefaultAnswerPolicy struct{}

func (DefaultAnswerPolicy) Match(question *entity.Question, answer map[string]interface{}) (float64, map[string]interface{}) {
	expected := expectedAnswer(question)
	submitted := submittedAnswer(answer)

	detail := map[string]interface{}{
		"expected":  expected,
		"submitted": submitted,
	}
	if expected == "" {
		detail["matched"] = false
		return 0, detail
	}

	var matched bool
	if question != nil && question.Type == constant.QuestionTypeShortcut {
		matched = normalizeChord(expected) == normalizeChord(submitted)
	} else {
		matched = normalizeText(expected) == normalizeText(submitted)
	}
	detail["matched"] = matched

	if matched {
		return 1, detail
	}
	return 0, detail
}

func expectedAnswer(question *entity.Question) string {
	if question == nil || question.Meta == nil {
		return ""
	}
	if v, ok := question.Meta["expected"].(string); ok {
		return v
	}
	return ""
}

func submittedAnswer(answer map[string]interface{}) string {
	if answer == nil {
		return ""
	}
	for _, key := range []string{"choice", "text", "keys", "answer"} {
		if v, ok := answer[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeChord reduces "Ctrl + Shift + L" style inputs to "ctrl+shift+l".
func normalizeChord(s string) string {
	parts := strings.Split(strings.ToLower(s), "+")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "+")
}
