package grading

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-interview-be/internal/entity"
	"ai-interview-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestRubricEmptyAnswerUsesBaseScore(t *testing.T) {
	provider := &stubProvider{reply: `{"score": 95}`}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "   "}})

	assert.Equal(t, 55.0, res.Score)
	assert.Equal(t, FallbackFeedback, res.AutoFeedback)
	assert.Zero(t, provider.calls, "empty answers must not hit the scorer")
}

func TestRubricNilProviderFallsBack(t *testing.T) {
	s := NewRubricStrategy(nil, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "I used pivot tables in Excel"}})

	// Without a scorer the answer text never reaches the heuristic, so no
	// keyword bonuses apply: flat base score.
	assert.Equal(t, 55.0, res.Score)
	assert.Equal(t, FallbackFeedback, res.AutoFeedback)
}

func TestRubricFallbackKeywordBonuses(t *testing.T) {
	// A failing scorer passes the raw answer through to the heuristic, which
	// is where the keyword bonuses kick in.
	s := NewRubricStrategy(&stubProvider{err: errors.New("connection refused")}, time.Second, nil)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no keywords", "I answered something generic", 55},
		{"tool only", "I mostly work in excel", 70},
		{"technique only", "I used a pivot table", 65},
		{"tool and technique", "In excel I used xlookup", 80},
		{"technique bonus applies once", "pivot vlookup xlookup index match", 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": tt.text}})
			assert.Equal(t, tt.want, res.Score)
		})
	}
}

func TestRubricProviderErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "plain answer"}})

	assert.Equal(t, 55.0, res.Score)
	assert.Equal(t, FallbackFeedback, res.AutoFeedback)
	assert.Equal(t, 1, provider.calls)
}

func TestRubricMalformedOutputFallsBack(t *testing.T) {
	provider := &stubProvider{reply: "I think the candidate did well."}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "plain answer"}})

	assert.Equal(t, 55.0, res.Score)
	assert.Equal(t, FallbackFeedback, res.AutoFeedback)
}

func TestRubricParsesVerdict(t *testing.T) {
	provider := &stubProvider{reply: `{"score": 82, "strengths": ["clear structure"], "improvements": ["name concrete functions"], "summary": "Solid answer"}`}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{
		Question: &entity.Question{Prompt: "Describe a workbook you built"},
		Answer:   map[string]interface{}{"text": "I built a forecasting workbook"},
	})

	assert.Equal(t, 82.0, res.Score)
	assert.Equal(t, "Solid answer", res.Notes)
	assert.Contains(t, res.AutoFeedback, "clear structure")
	assert.Contains(t, res.AutoFeedback, "name concrete functions")
}

func TestRubricToleratesCodeFences(t *testing.T) {
	provider := &stubProvider{reply: "```json\n{\"score\": 64, \"summary\": \"ok\"}\n```"}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "an answer"}})

	require.Equal(t, 64.0, res.Score)
	assert.Equal(t, "ok", res.Notes)
}

func TestRubricMissingScoreIsMalformed(t *testing.T) {
	provider := &stubProvider{reply: `{"summary": "no score field"}`}
	s := NewRubricStrategy(provider, time.Second, nil)

	res := s.Grade(context.Background(), Input{Answer: map[string]interface{}{"text": "an answer"}})

	assert.Equal(t, 55.0, res.Score)
}
