// Package grading turns a candidate answer into a normalized Result via one
// of three strategies, selected by question type. The canonical Result.Score
// scale is 0-100; strategies that reason in fractions convert at their own
// boundary.
package grading

import (
	"context"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
)

// Result is transient; the caller decides what subset to persist on the
// attempt record.
type Result struct {
	Score        float64                `json:"score"`
	Objective    map[string]interface{} `json:"objective,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	AutoFeedback string                 `json:"auto_feedback,omitempty"`
	Confidence   *float64               `json:"confidence,omitempty"`
}

// Input carries the question (nil when the id resolved to nothing) and the
// raw answer payload as submitted.
type Input struct {
	Question *entity.Question
	Answer   map[string]interface{}
}

// Strategy implementations are total: they always produce a Result, mapping
// their own failures to deterministic fallbacks internally.
type Strategy interface {
	Grade(ctx context.Context, in Input) *Result
}

// Dispatcher routes by question type. Unknown and absent types fall through
// to the rubric strategy.
type Dispatcher struct {
	objective Strategy
	formula   Strategy
	rubric    Strategy
}

func NewDispatcher(objective, formula, rubric Strategy) *Dispatcher {
	return &Dispatcher{
		objective: objective,
		formula:   formula,
		rubric:    rubric,
	}
}

func (d *Dispatcher) Grade(ctx context.Context, questionType string, in Input) *Result {
	return d.strategyFor(questionType).Grade(ctx, in)
}

func (d *Dispatcher) strategyFor(questionType string) Strategy {
	switch questionType {
	case constant.QuestionTypeMCQ, constant.QuestionTypeShortText, constant.QuestionTypeShortcut:
		return d.objective
	case constant.QuestionTypeFormula, constant.QuestionTypeExcelFormula:
		return d.formula
	default:
		return d.rubric
	}
}
