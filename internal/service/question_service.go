package service

import (
	"context"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
)

// IQuestionService walks the session's question plan: each call serves the
// first unasked question matching the current plan entry, falling back to a
// single arbitrary question when the target pool is spent. Completion is
// signalled as soon as the cursor walks past the plan, even on a turn that
// still serves a fallback question.
type IQuestionService interface {
	NextQuestion(ctx context.Context, sessionId string) (*dto.GetNextQuestionResponse, error)
}

type questionService struct {
	uowFactory unitofwork.RepositoryFactory
	contextSvc IContextService
	logger     logger.ILogger
}

func NewQuestionService(uowFactory unitofwork.RepositoryFactory, contextSvc IContextService, log logger.ILogger) IQuestionService {
	return &questionService{uowFactory: uowFactory, contextSvc: contextSvc, logger: log}
}

func (s *questionService) NextQuestion(ctx context.Context, sessionId string) (*dto.GetNextQuestionResponse, error) {
	sc, err := s.contextSvc.Fetch(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	questions := uow.QuestionRepository()

	exhausted := sc.PlanExhausted()

	var picked *entity.Question
	if !exhausted {
		target := sc.QuestionPlan[sc.PlanIndex]
		candidates, err := questions.FindAll(ctx,
			specification.BySkill{Skill: target.Skill},
			specification.ByDifficulty{Difficulty: target.Difficulty},
			specification.OrderBy{Field: "id"},
			specification.Limit{N: constant.QuestionListLimit},
		)
		if err != nil {
			return nil, err
		}
		for _, q := range candidates {
			if !sc.HasAsked(q.Id) {
				picked = q
				break
			}
		}
	}

	if picked == nil {
		// Target pool spent, or no target at all once the plan is walked:
		// a single arbitrary row (lowest difficulty, then id), served only
		// when it has not been asked yet.
		rows, err := questions.FindAll(ctx,
			specification.OrderBy{Field: "difficulty"},
			specification.OrderBy{Field: "id"},
			specification.Limit{N: 1},
		)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 && !sc.HasAsked(rows[0].Id) {
			picked = rows[0]
		}
	}

	if picked != nil {
		sc.MarkAsked(picked.Id)
		if !exhausted {
			sc.PlanIndex++
		}
		sc.CurrentQuestion = &entity.QuestionSnapshot{
			Id:         picked.Id,
			Skill:      picked.Skill,
			Difficulty: picked.Difficulty,
			Type:       picked.Type,
			Prompt:     picked.Prompt,
			Weight:     picked.Weight,
			Meta:       picked.Meta,
		}
	} else {
		if sc.PlanIndex < len(sc.QuestionPlan) {
			sc.PlanIndex = len(sc.QuestionPlan)
		}
		sc.CurrentQuestion = nil
	}
	if err := s.contextSvc.Store(ctx, sessionId, sc); err != nil {
		return nil, err
	}

	completed := picked == nil
	var remaining *int
	if len(sc.QuestionPlan) > 0 {
		r := sc.Remaining()
		remaining = &r
		if sc.PlanExhausted() {
			completed = true
		}
	}

	resp := &dto.GetNextQuestionResponse{
		RatingSummary: sc.RatingSummary,
		PlanIndex:     sc.PlanIndex,
		Remaining:     remaining,
		Completed:     completed,
	}
	if picked != nil {
		resp.Question = &dto.QuestionDTO{
			Id:         picked.Id,
			Skill:      picked.Skill,
			Difficulty: picked.Difficulty,
			Type:       picked.Type,
			Prompt:     picked.Prompt,
			Weight:     picked.Weight,
			Meta:       picked.Meta,
		}
	}
	return resp, nil
}
