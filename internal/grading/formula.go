package grading

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"ai-interview-be/internal/entity"
)

// FormulaStrategy scores a submitted formula against the hidden reference
// checks attached to the question meta:
//
//	meta.checks: [{"name": "...", "expected": <value>}, ...]
//
// The candidate submits the formula text plus the outputs it produced per
// check (the workbook runner is part of the client harness). Partial credit
// is the fraction of checks whose output matches the expected value.
type FormulaStrategy struct{}

func NewFormulaStrategy() *FormulaStrategy {
	return &FormulaStrategy{}
}

const numericTolerance = 1e-9

func (s *FormulaStrategy) Grade(ctx context.Context, in Input) *Result {
	checks := referenceChecks(in.Question)
	outputs := submittedOutputs(in.Answer)
	formulaText, _ := stringField(in.Answer, "formula")

	// No reference workbook on the question: fall back to comparing the
	// formula text itself against the expected formula.
	if len(checks) == 0 {
		return s.gradeFormulaText(in, formulaText)
	}

	passed := 0
	checkDetails := make([]interface{}, 0, len(checks))
	for _, check := range checks {
		got, submittedCheck := outputs[check.Name]
		ok := submittedCheck && valuesMatch(check.Expected, got)
		if ok {
			passed++
		}
		checkDetails = append(checkDetails, map[string]interface{}{
			"name":     check.Name,
			"expected": check.Expected,
			"got":      got,
			"passed":   ok,
		})
	}

	score := float64(passed) / float64(len(checks)) * 100
	return &Result{
		Score: score,
		Objective: map[string]interface{}{
			"checks": checkDetails,
		},
		Notes: fmt.Sprintf("%d/%d reference checks passed", passed, len(checks)),
	}
}

func (s *FormulaStrategy) gradeFormulaText(in Input, formulaText string) *Result {
	expected := ""
	if in.Question != nil && in.Question.Meta != nil {
		expected, _ = in.Question.Meta["expected_formula"].(string)
	}

	matched := expected != "" && normalizeFormula(formulaText) == normalizeFormula(expected)
	score := 0.0
	if matched {
		score = 100
	}
	return &Result{
		Score: score,
		Objective: map[string]interface{}{
			"checks": []interface{}{map[string]interface{}{
				"name":     "formula_text",
				"expected": expected,
				"got":      formulaText,
				"passed":   matched,
			}},
		},
		Notes: "No reference workbook configured; compared formula text",
	}
}

type referenceCheck struct {
	Name     string
	Expected interface{}
}

func referenceChecks(q *entity.Question) []referenceCheck {
	if q == nil || q.Meta == nil {
		return nil
	}
	raw, ok := q.Meta["checks"].([]interface{})
	if !ok {
		return nil
	}
	checks := make([]referenceCheck, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			name = fmt.Sprintf("check_%d", i+1)
		}
		checks = append(checks, referenceCheck{
			Name:     name,
			Expected: m["expected"],
		})
	}
	return checks
}

func submittedOutputs(answer map[string]interface{}) map[string]interface{} {
	if answer == nil {
		return map[string]interface{}{}
	}
	if m, ok := answer["outputs"].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key].(string)
	return v, ok
}

// valuesMatch compares numerically when both sides parse as numbers,
// otherwise by normalized string equality.
func valuesMatch(expected, got interface{}) bool {
	ef, eok := asFloat(expected)
	gf, gok := asFloat(got)
	if eok && gok {
		return math.Abs(ef-gf) <= numericTolerance
	}
	return normalizeText(fmt.Sprint(expected)) == normalizeText(fmt.Sprint(got))
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// normalizeFormula strips whitespace and case so "=SUM(A1:A10)" and
// "= sum( a1 : a10 )" compare equal. Semantic equivalence beyond that is the
// reference-check path's job.
func normalizeFormula(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.TrimPrefix(s, "=")
}
