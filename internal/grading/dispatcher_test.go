package grading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type markerStrategy struct {
	name string
}

func (m *markerStrategy) Grade(ctx context.Context, in Input) *Result {
	return &Result{Notes: m.name}
}

func TestDispatcherRouting(t *testing.T) {
	d := NewDispatcher(
		&markerStrategy{name: "objective"},
		&markerStrategy{name: "formula"},
		&markerStrategy{name: "rubric"},
	)

	tests := []struct {
		questionType string
		want         string
	}{
		{"mcq", "objective"},
		{"short_text", "objective"},
		{"shortcut", "objective"},
		{"formula", "formula"},
		{"excel_formula", "formula"},
		{"open", "rubric"},
		{"behavioral", "rubric"},
		{"", "rubric"},
		{"something_new", "rubric"},
	}
	for _, tt := range tests {
		t.Run(tt.questionType, func(t *testing.T) {
			res := d.Grade(context.Background(), tt.questionType, Input{})
			assert.Equal(t, tt.want, res.Notes)
		})
	}
}
