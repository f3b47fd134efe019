package grading

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/pkg/llm"
)

// Heuristic fallback scoring. Base 55, +15 when the answer names the target
// tool, +10 when it names any technique keyword, capped at 90.
const (
	fallbackBaseScore      = 55.0
	fallbackToolBonus      = 15.0
	fallbackTechniqueBonus = 10.0
	fallbackScoreCap       = 90.0

	// FallbackFeedback is the fixed encouragement line attached to every
	// heuristic result.
	FallbackFeedback = "Thanks for the answer—consider adding more concrete Excel specifics next time."

	genericFeedback = "Great work—thanks for the answer."
)

var techniqueKeywords = []string{"pivot", "vlookup", "xlookup", "index", "match"}

const targetTool = "excel"

// RubricStrategy delegates open-ended answers to an LLM scorer with a fixed
// JSON contract (score 0-100, strengths, improvements, summary). Every
// failure mode (no credential, empty answer, network error, timeout,
// malformed output) collapses to the deterministic heuristic; the strategy
// never surfaces an error and never blocks past its timeout.
type RubricStrategy struct {
	provider llm.LLMProvider
	timeout  time.Duration
	logger   logger.ILogger
}

type rubricVerdict struct {
	Score        *float64 `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

func NewRubricStrategy(provider llm.LLMProvider, timeout time.Duration, log logger.ILogger) *RubricStrategy {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &RubricStrategy{
		provider: provider,
		timeout:  timeout,
		logger:   log,
	}
}

func (s *RubricStrategy) Grade(ctx context.Context, in Input) *Result {
	answerText := answerText(in.Answer)
	questionPrompt := questionPrompt(in)

	if strings.TrimSpace(answerText) == "" || s.provider == nil {
		return s.fallback("")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.provider.Chat(callCtx, []llm.Message{
		{Role: "system", Content: constant.RubricSystemPrompt},
		{Role: "user", Content: "Question:\n" + questionPrompt + "\n\nCandidate answer:\n" + answerText},
	}, llm.WithJSONOnly(), llm.WithTemperature(0.2))
	if err != nil {
		s.warn("Scoring call failed, using heuristic", map[string]interface{}{"error": err.Error()})
		return s.fallback(answerText)
	}

	verdict, ok := parseVerdict(raw)
	if !ok {
		s.warn("Malformed scoring output, using heuristic", nil)
		return s.fallback(answerText)
	}

	strengths := verdict.Strengths
	if strengths == nil {
		strengths = []string{}
	}
	improvements := verdict.Improvements
	if improvements == nil {
		improvements = []string{}
	}

	return &Result{
		Score: *verdict.Score,
		Objective: map[string]interface{}{
			"strengths":    strengths,
			"improvements": improvements,
		},
		Notes:        verdict.Summary,
		AutoFeedback: formatFeedback(strengths, improvements),
	}
}

// parseVerdict accepts the raw completion, tolerating markdown code fences
// some models wrap around JSON.
func parseVerdict(raw string) (*rubricVerdict, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var verdict rubricVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return nil, false
	}
	if verdict.Score == nil {
		return nil, false
	}
	return &verdict, true
}

func formatFeedback(strengths, improvements []string) string {
	parts := make([]string, 0, 2)
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(strengths, "; "))
	}
	if len(improvements) > 0 {
		parts = append(parts, "Focus areas: "+strings.Join(improvements, "; "))
	}
	if len(parts) == 0 {
		return genericFeedback
	}
	return strings.Join(parts, "\n")
}

func (s *RubricStrategy) warn(message string, details map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn("RubricStrategy", message, details)
	}
}

func (s *RubricStrategy) fallback(answer string) *Result {
	score := fallbackBaseScore
	if answer != "" {
		text := strings.ToLower(answer)
		if strings.Contains(text, targetTool) {
			score += fallbackToolBonus
		}
		for _, keyword := range techniqueKeywords {
			if strings.Contains(text, keyword) {
				score += fallbackTechniqueBonus
				break
			}
		}
		if score > fallbackScoreCap {
			score = fallbackScoreCap
		}
	}
	return &Result{
		Score: score,
		Objective: map[string]interface{}{
			"strengths":    []string{},
			"improvements": []string{},
		},
		Notes:        "Heuristic fallback score",
		AutoFeedback: FallbackFeedback,
	}
}

func answerText(answer map[string]interface{}) string {
	if answer == nil {
		return ""
	}
	if v, ok := answer["text"].(string); ok && v != "" {
		return v
	}
	if v, ok := answer["answer"].(string); ok {
		return v
	}
	return ""
}

func questionPrompt(in Input) string {
	if in.Question != nil && in.Question.Prompt != "" {
		return in.Question.Prompt
	}
	if in.Answer != nil {
		if v, ok := in.Answer["question_prompt"].(string); ok {
			return v
		}
	}
	return ""
}
