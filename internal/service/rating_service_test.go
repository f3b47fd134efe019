package service

import (
	"context"
	"testing"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingFixture() (*fakeUow, IContextService, IRatingService) {
	uow := newFakeUow()
	cache := newFakeCache()
	fallback := memory.NewContextRepository()
	contextSvc := NewContextService(&fakeFactory{uow: uow}, cache, fallback, nopLogger{})
	svc := NewRatingService(&fakeFactory{uow: uow}, contextSvc, nopLogger{})
	return uow, contextSvc, svc
}

func TestRatingDelta(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		hints int
		want  int
	}{
		{"strong answer", 0.9, 0, 8},
		{"threshold strong", 0.8, 0, 8},
		{"decent answer", 0.6, 0, 4},
		{"weak answer", 0.5, 0, -6},
		{"miss", 0.0, 0, -6},
		{"strong with hint", 0.9, 1, 6},
		{"decent with hint", 0.7, 2, 2},
		{"miss with hint keeps penalty", 0.2, 1, -6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ratingDelta(tt.score, tt.hints))
		})
	}
}

func TestRecordOutcomeRequiresSessionId(t *testing.T) {
	_, _, svc := newRatingFixture()

	_, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{})
	require.Error(t, err)
	apiErr, ok := err.(*serverutils.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.Code)
}

func TestRecordOutcomePersistsAttempt(t *testing.T) {
	uow, _, svc := newRatingFixture()

	res, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId:  "sess_a",
		QuestionId: "q_intro_1",
		Score:      0.85,
		TimeMs:     42000,
		Difficulty: 2,
		Meta: map[string]interface{}{
			"skill":          "excel_basics",
			"hints_used":     1,
			"feedback":       "good",
			"answer_payload": map[string]interface{}{"text": "an answer"},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)

	require.Len(t, uow.attempts.attempts, 1)
	attempt := uow.attempts.attempts[0]
	assert.Equal(t, 0.85, attempt.Score)
	assert.Equal(t, 1, attempt.HintsUsed)
	assert.Equal(t, "good", attempt.Feedback)
	assert.Equal(t, 2, attempt.Difficulty)
}

func TestRecordOutcomeNewSkillWithHintDiscount(t *testing.T) {
	uow, _, svc := newRatingFixture()

	res, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId:  "sess_h",
		QuestionId: "q_intro_1",
		Score:      0.9,
		Difficulty: 2,
		Meta:       map[string]interface{}{"skill": "excel_basics", "hints_used": 1},
	})
	require.NoError(t, err)

	// default 50 +8 for the strong answer -2 hint discount
	assert.Equal(t, map[string]float64{"excel_basics": 56}, res.RatingSummary)

	state, err := uow.skillStates.FindOne(context.Background(), "sess_h", "excel_basics")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 56, state.Rating)
	assert.Equal(t, 1, state.AskedCount)
	assert.Equal(t, 1, state.CorrectCount)
	assert.Equal(t, 2, state.TargetDifficulty)
}

func TestRecordOutcomeRatingStaysInBounds(t *testing.T) {
	uow, _, svc := newRatingFixture()
	uow.skillStates.states = []*entity.SkillState{
		{SessionId: "sess_b", Skill: "excel_basics", Rating: 3, TargetDifficulty: 2},
	}

	res, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId:  "sess_b",
		Score:      0.1,
		Difficulty: 2,
		Meta:       map[string]interface{}{"skill": "excel_basics"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.RatingSummary["excel_basics"])

	uow.skillStates.states[0].Rating = 98
	res, err = svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId:  "sess_b",
		Score:      0.95,
		Difficulty: 2,
		Meta:       map[string]interface{}{"skill": "excel_basics"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), res.RatingSummary["excel_basics"])
}

func TestRecordOutcomeWithoutSkillSkipsRatingUpdate(t *testing.T) {
	uow, _, svc := newRatingFixture()

	res, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId: "sess_ns",
		Score:     0.9,
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.Empty(t, res.RatingSummary)
	assert.Empty(t, uow.skillStates.states)
	assert.Len(t, uow.attempts.attempts, 1)
}

func TestRecordOutcomeRefreshesContext(t *testing.T) {
	_, contextSvc, svc := newRatingFixture()

	_, err := svc.RecordOutcome(context.Background(), &dto.RecordOutcomeRequest{
		SessionId:  "sess_ctx",
		Score:      0.85,
		Difficulty: 2,
		Meta:       map[string]interface{}{"skill": "excel_formulas"},
	})
	require.NoError(t, err)

	sc, err := contextSvc.Fetch(context.Background(), "sess_ctx")
	require.NoError(t, err)
	require.Len(t, sc.SkillStates, 1)
	assert.Equal(t, "excel_formulas", sc.SkillStates[0].Skill)
	assert.Equal(t, 58.0, sc.RatingSummary["excel_formulas"])
}

func TestUpdateDifficultyNoAttempts(t *testing.T) {
	_, _, svc := newRatingFixture()

	res, err := svc.UpdateDifficulty(context.Background(), "sess_none")
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, "No attempts yet; maintaining baseline difficulty", res.Rationale)
}

func TestUpdateDifficultyEscalates(t *testing.T) {
	uow, _, svc := newRatingFixture()
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_up", Score: 0.8, Difficulty: 2},
		{SessionId: "sess_up", Score: 0.85, Difficulty: 2},
		{SessionId: "sess_up", Score: 0.9, Difficulty: 2},
	}

	res, err := svc.UpdateDifficulty(context.Background(), "sess_up")
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewLevel)
	assert.Equal(t, "Average score 0.85 >= 0.80; escalating difficulty to 3", res.Rationale)
}

func TestUpdateDifficultyHoldsAtCeiling(t *testing.T) {
	uow, _, svc := newRatingFixture()
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_cap", Score: 1.0, Difficulty: 3},
	}

	res, err := svc.UpdateDifficulty(context.Background(), "sess_cap")
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewLevel)
	assert.Equal(t, "Average score 1.00; keeping difficulty at 3", res.Rationale)
}

func TestUpdateDifficultyDeEscalates(t *testing.T) {
	uow, _, svc := newRatingFixture()
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_down", Score: 0.2, Difficulty: 2},
		{SessionId: "sess_down", Score: 0.4, Difficulty: 2},
		{SessionId: "sess_down", Score: 0.3, Difficulty: 2},
	}

	res, err := svc.UpdateDifficulty(context.Background(), "sess_down")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, "Average score 0.30 <= 0.40; reducing difficulty to 1", res.Rationale)
}

func TestUpdateDifficultyHoldsAtFloor(t *testing.T) {
	uow, _, svc := newRatingFixture()
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_floor", Score: 0.1, Difficulty: 1},
	}

	res, err := svc.UpdateDifficulty(context.Background(), "sess_floor")
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, "Average score 0.10; keeping difficulty at 1", res.Rationale)
}

func TestUpdateDifficultyUsesLastAttemptLevel(t *testing.T) {
	uow, _, svc := newRatingFixture()
	// appended in chronological order; the fake returns newest first
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_prev", Score: 0.9, Difficulty: 1},
		{SessionId: "sess_prev", Score: 0.9, Difficulty: 2},
	}

	res, err := svc.UpdateDifficulty(context.Background(), "sess_prev")
	require.NoError(t, err)
	assert.Equal(t, 3, res.NewLevel, "previous level comes from the newest attempt")
}
