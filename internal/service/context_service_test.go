package service

import (
	"context"
	"testing"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextFixture() (*fakeUow, *fakeCache, *memory.ContextRepository, IContextService) {
	uow := newFakeUow()
	cache := newFakeCache()
	fallback := memory.NewContextRepository()
	svc := NewContextService(&fakeFactory{uow: uow}, cache, fallback, nopLogger{})
	return uow, cache, fallback, svc
}

func TestFetchUnknownSessionSynthesizesDefault(t *testing.T) {
	_, cache, fallback, svc := newContextFixture()

	sc, err := svc.Fetch(context.Background(), "sess_cold")
	require.NoError(t, err)

	assert.Equal(t, "sess_cold", sc.SessionId)
	assert.Equal(t, constant.StageIntro, sc.Stage)
	assert.Equal(t, 0, sc.PlanIndex)
	assert.Empty(t, sc.AskedQuestions)
	assert.Empty(t, sc.SkillStates)

	require.Len(t, sc.QuestionPlan, 4)
	assert.Equal(t, entity.PlanEntry{Skill: "excel_basics", Difficulty: 2}, sc.QuestionPlan[0])
	assert.Equal(t, entity.PlanEntry{Skill: "excel_formulas", Difficulty: 2}, sc.QuestionPlan[1])
	assert.Equal(t, entity.PlanEntry{Skill: "excel_analysis", Difficulty: 3}, sc.QuestionPlan[2])
	assert.Equal(t, entity.PlanEntry{Skill: "professionalism", Difficulty: 1}, sc.QuestionPlan[3])

	// Synthesized context is persisted for the next lookup.
	assert.NotNil(t, cache.GetContext(context.Background(), "sess_cold"))
	_, found := fallback.Get("sess_cold")
	assert.True(t, found)
}

func TestFetchIsIdempotent(t *testing.T) {
	_, _, _, svc := newContextFixture()

	first, err := svc.Fetch(context.Background(), "sess_1")
	require.NoError(t, err)
	second, err := svc.Fetch(context.Background(), "sess_1")
	require.NoError(t, err)

	assert.Equal(t, first.Stage, second.Stage)
	assert.Equal(t, first.PlanIndex, second.PlanIndex)
	assert.Equal(t, first.QuestionPlan, second.QuestionPlan)
}

func TestFetchDerivesStageFromSessionStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{constant.SessionStatusCreated, constant.StageIntro},
		{constant.SessionStatusInProgress, constant.StageCore},
		{constant.SessionStatusCompleted, constant.StageWrap},
		{"weird_status", constant.StageCore},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			uow, _, _, svc := newContextFixture()
			uow.sessions.sessions["sess_x"] = &entity.Session{Id: "sess_x", Status: tt.status}

			sc, err := svc.Fetch(context.Background(), "sess_x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, sc.Stage)
		})
	}
}

func TestFetchProjectsSkillStates(t *testing.T) {
	uow, _, _, svc := newContextFixture()
	uow.sessions.sessions["sess_p"] = &entity.Session{Id: "sess_p", Status: constant.SessionStatusInProgress}
	uow.skillStates.states = []*entity.SkillState{
		{SessionId: "sess_p", Skill: "excel_basics", Rating: 62, TargetDifficulty: 2, AskedCount: 3, CorrectCount: 1},
		{SessionId: "sess_p", Skill: "excel_formulas", Rating: 44, TargetDifficulty: 1, AskedCount: 2},
	}

	sc, err := svc.Fetch(context.Background(), "sess_p")
	require.NoError(t, err)

	require.Len(t, sc.SkillStates, 2)
	assert.Equal(t, 62, sc.SkillStates[0].Rating)
	assert.Equal(t, map[string]float64{"excel_basics": 62, "excel_formulas": 44}, sc.RatingSummary)
	assert.Equal(t, []string{"excel_basics", "excel_formulas"}, sc.SkillRotation)
}

func TestFetchPrefersCacheOverStore(t *testing.T) {
	uow, cache, _, svc := newContextFixture()
	uow.sessions.sessions["sess_c"] = &entity.Session{Id: "sess_c", Status: constant.SessionStatusCompleted}
	cache.SetContext(context.Background(), "sess_c", &entity.SessionContext{
		SessionId: "sess_c",
		Stage:     constant.StageCore,
		PlanIndex: 2,
		QuestionPlan: []entity.PlanEntry{
			{Skill: "excel_basics", Difficulty: 2},
			{Skill: "excel_formulas", Difficulty: 2},
			{Skill: "excel_analysis", Difficulty: 3},
		},
		AskedQuestions: []string{"q_intro_1", "q_tech_1"},
	})

	sc, err := svc.Fetch(context.Background(), "sess_c")
	require.NoError(t, err)

	// The cached stage wins even though the store says completed.
	assert.Equal(t, constant.StageCore, sc.Stage)
	assert.Equal(t, 2, sc.PlanIndex)
	assert.Equal(t, []string{"q_intro_1", "q_tech_1"}, sc.AskedQuestions)
}

func TestFetchBackfillsPartialCacheEntries(t *testing.T) {
	_, cache, _, svc := newContextFixture()
	cache.SetContext(context.Background(), "sess_old", &entity.SessionContext{
		SessionId: "sess_old",
		Stage:     constant.StageCore,
	})

	sc, err := svc.Fetch(context.Background(), "sess_old")
	require.NoError(t, err)

	assert.Len(t, sc.QuestionPlan, 4)
	assert.NotNil(t, sc.AskedQuestions)
	assert.NotNil(t, sc.RatingSummary)
}

func TestFetchServesFallbackWhenCacheMisses(t *testing.T) {
	uow, cache, fallback, svc := newContextFixture()
	uow.sessions.err = assert.AnError // store is down too

	fallback.Save(&entity.SessionContext{
		SessionId:      "sess_f",
		Stage:          constant.StageWrap,
		QuestionPlan:   defaultQuestionPlan(),
		PlanIndex:      4,
		AskedQuestions: []string{"q_intro_1"},
	})
	cache.disabled = true

	sc, err := svc.Fetch(context.Background(), "sess_f")
	require.NoError(t, err)
	assert.Equal(t, constant.StageWrap, sc.Stage)
	assert.Equal(t, 4, sc.PlanIndex)
}

func TestFetchSurvivesStoreOutage(t *testing.T) {
	uow, _, _, svc := newContextFixture()
	uow.sessions.err = assert.AnError

	sc, err := svc.Fetch(context.Background(), "sess_down")
	require.NoError(t, err)
	assert.Equal(t, constant.StageIntro, sc.Stage)
	assert.Len(t, sc.QuestionPlan, 4)
}

func TestStoreWritesCacheFallbackAndUpserts(t *testing.T) {
	uow, cache, fallback, svc := newContextFixture()

	sc := defaultContext("sess_s")
	sc.SkillStates = []entity.SkillSnapshot{
		{Skill: "excel_basics", Rating: 58, TargetDifficulty: 2, AskedCount: 1},
	}
	require.NoError(t, svc.Store(context.Background(), "sess_s", sc))

	assert.NotNil(t, cache.GetContext(context.Background(), "sess_s"))
	_, found := fallback.Get("sess_s")
	assert.True(t, found)

	state, err := uow.skillStates.FindOne(context.Background(), "sess_s", "excel_basics")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, 58, state.Rating)
}

func TestStoreSwallowsUpsertFailures(t *testing.T) {
	uow, cache, _, svc := newContextFixture()
	uow.skillStates.err = assert.AnError

	sc := defaultContext("sess_e")
	sc.SkillStates = []entity.SkillSnapshot{{Skill: "excel_basics", Rating: 50}}

	require.NoError(t, svc.Store(context.Background(), "sess_e", sc))
	assert.NotNil(t, cache.GetContext(context.Background(), "sess_e"), "cache write must land even when the store fails")
}
