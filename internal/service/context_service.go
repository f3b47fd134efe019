package service

import (
	"context"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/internal/repository/unitofwork"
)

// IContextService reconciles the cache and the durable store into one
// authoritative session context. Read path: cache → process-local fallback →
// durable store → synthesized default (an absent session is the zeroth-turn
// case, not an error). Write path: cache and fallback unconditionally, then
// skill-state upserts; backend failures degrade silently.
type IContextService interface {
	Fetch(ctx context.Context, sessionId string) (*entity.SessionContext, error)
	Store(ctx context.Context, sessionId string, sc *entity.SessionContext) error
}

type contextService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      contract.ContextCache
	fallback   *memory.ContextRepository
	logger     logger.ILogger
}

func NewContextService(
	uowFactory unitofwork.RepositoryFactory,
	cache contract.ContextCache,
	fallback *memory.ContextRepository,
	log logger.ILogger,
) IContextService {
	return &contextService{
		uowFactory: uowFactory,
		cache:      cache,
		fallback:   fallback,
		logger:     log,
	}
}

func (s *contextService) Fetch(ctx context.Context, sessionId string) (*entity.SessionContext, error) {
	if cached := s.cache.GetContext(ctx, sessionId); cached != nil {
		cached.SessionId = sessionId
		backfillDefaults(cached)
		return cached, nil
	}

	// The fallback table guards against a cache that is up but was never
	// repopulated after a previous store failure.
	if sc, found := s.fallback.Get(sessionId); found {
		backfillDefaults(sc)
		return sc, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindByID(ctx, sessionId)
	if err != nil {
		s.logger.Warn("ContextService", "Durable store unreachable, serving synthesized context", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		session = nil
	}

	if session == nil {
		sc := defaultContext(sessionId)
		s.fallback.Save(sc)
		s.cache.SetContext(ctx, sessionId, sc)
		return sc, nil
	}

	states, err := uow.SkillStateRepository().FindAllBySession(ctx, sessionId)
	if err != nil {
		s.logger.Warn("ContextService", "Skill state read failed, continuing without", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
		states = nil
	}

	snapshots := make([]entity.SkillSnapshot, 0, len(states))
	rotation := make([]string, 0, len(states))
	summary := make(map[string]float64, len(states))
	for _, st := range states {
		if st.Skill == "" {
			continue
		}
		snapshots = append(snapshots, entity.SkillSnapshot{
			Skill:            st.Skill,
			Rating:           st.Rating,
			TargetDifficulty: st.TargetDifficulty,
			AskedCount:       st.AskedCount,
			CorrectCount:     st.CorrectCount,
		})
		rotation = append(rotation, st.Skill)
		summary[st.Skill] = float64(st.Rating)
	}

	sc := &entity.SessionContext{
		SessionId:        sessionId,
		Stage:            deriveStage(session.Status),
		SkillRotation:    rotation,
		PendingFollowups: []string{},
		SkillStates:      snapshots,
		RatingSummary:    summary,
		RecentTranscript: s.cache.RecentTranscript(ctx, sessionId, constant.TranscriptWindow),
		QuestionPlan:     defaultQuestionPlan(),
		PlanIndex:        0,
		AskedQuestions:   []string{},
	}

	s.cache.SetContext(ctx, sessionId, sc)
	s.fallback.Save(sc)
	return sc, nil
}

func (s *contextService) Store(ctx context.Context, sessionId string, sc *entity.SessionContext) error {
	sc.SessionId = sessionId
	s.cache.SetContext(ctx, sessionId, sc)
	s.fallback.Save(sc)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SkillStateRepository()
	for _, snapshot := range sc.SkillStates {
		if snapshot.Skill == "" {
			continue
		}
		state := &entity.SkillState{
			SessionId:        sessionId,
			Skill:            snapshot.Skill,
			Rating:           snapshot.Rating,
			TargetDifficulty: snapshot.TargetDifficulty,
			AskedCount:       snapshot.AskedCount,
			CorrectCount:     snapshot.CorrectCount,
		}
		if err := repo.Upsert(ctx, state); err != nil {
			// Cache and fallback already hold the context; a failed upsert
			// self-heals on the next successful write.
			s.logger.Warn("ContextService", "Skill state upsert failed", map[string]interface{}{
				"session_id": sessionId, "skill": snapshot.Skill, "error": err.Error(),
			})
		}
	}
	return nil
}

func deriveStage(status string) string {
	switch status {
	case constant.SessionStatusCreated:
		return constant.StageIntro
	case constant.SessionStatusInProgress:
		return constant.StageCore
	case constant.SessionStatusCompleted:
		return constant.StageWrap
	default:
		return constant.StageCore
	}
}

// backfillDefaults repairs partial cache entries written before the current
// curriculum shape existed.
func backfillDefaults(sc *entity.SessionContext) {
	if len(sc.QuestionPlan) == 0 {
		sc.QuestionPlan = defaultQuestionPlan()
	}
	if sc.AskedQuestions == nil {
		sc.AskedQuestions = []string{}
	}
	if sc.PlanIndex < 0 {
		sc.PlanIndex = 0
	}
	if sc.RatingSummary == nil {
		sc.RatingSummary = map[string]float64{}
	}
	if sc.SkillStates == nil {
		sc.SkillStates = []entity.SkillSnapshot{}
	}
}

func defaultContext(sessionId string) *entity.SessionContext {
	return &entity.SessionContext{
		SessionId:        sessionId,
		Stage:            constant.StageIntro,
		SkillRotation:    []string{},
		PendingFollowups: []string{},
		SkillStates:      []entity.SkillSnapshot{},
		RatingSummary:    map[string]float64{},
		RecentTranscript: []entity.TranscriptTurn{},
		QuestionPlan:     defaultQuestionPlan(),
		PlanIndex:        0,
		AskedQuestions:   []string{},
	}
}

// defaultQuestionPlan is the fixed curriculum walked by every session.
func defaultQuestionPlan() []entity.PlanEntry {
	return []entity.PlanEntry{
		{Skill: "excel_basics", Difficulty: 2},
		{Skill: "excel_formulas", Difficulty: 2},
		{Skill: "excel_analysis", Difficulty: 3},
		{Skill: "professionalism", Difficulty: 1},
	}
}
