package service

import (
	"context"
	"fmt"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/repository/unitofwork"
	"github.com/gofiber/fiber/v2"
)

// IRatingService owns the adaptive loop: attempt persistence, per-skill
// rating updates and difficulty recomputation over the recent attempt window.
type IRatingService interface {
	RecordOutcome(ctx context.Context, req *dto.RecordOutcomeRequest) (*dto.RecordOutcomeResponse, error)
	UpdateDifficulty(ctx context.Context, sessionId string) (*dto.UpdateDifficultyResponse, error)
}

type ratingService struct {
	uowFactory unitofwork.RepositoryFactory
	contextSvc IContextService
	logger     logger.ILogger
}

func NewRatingService(uowFactory unitofwork.RepositoryFactory, contextSvc IContextService, log logger.ILogger) IRatingService {
	return &ratingService{uowFactory: uowFactory, contextSvc: contextSvc, logger: log}
}

// ratingDelta maps a fractional score to a rating adjustment. Hints discount
// positive deltas only; a miss is never punished extra for asking.
func ratingDelta(score float64, hintsUsed int) int {
	var delta int
	switch {
	case score >= 0.8:
		delta = 8
	case score >= 0.6:
		delta = 4
	default:
		delta = -6
	}
	if hintsUsed > 0 && delta > 0 {
		delta -= 2
	}
	return delta
}

func clampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > 100 {
		return 100
	}
	return rating
}

func (s *ratingService) RecordOutcome(ctx context.Context, req *dto.RecordOutcomeRequest) (*dto.RecordOutcomeResponse, error) {
	if req.SessionId == "" {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Invalid session_id")
	}

	meta := req.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	attempt := &entity.Attempt{
		SessionId:     req.SessionId,
		QuestionId:    req.QuestionId,
		Score:         req.Score,
		Objective:     metaMap(meta, "objective"),
		TimeMs:        req.TimeMs,
		Difficulty:    req.Difficulty,
		AnswerPayload: metaMap(meta, "answer_payload"),
		Feedback:      metaString(meta, "feedback"),
		HintsUsed:     metaInt(meta, "hints_used"),
	}
	if err := uow.AttemptRepository().Create(ctx, attempt); err != nil {
		return nil, err
	}

	if skill, ok := meta["skill"].(string); ok && skill != "" {
		if err := s.updateSkill(ctx, uow, req, skill, metaInt(meta, "hints_used")); err != nil {
			return nil, err
		}
	}

	states, err := uow.SkillStateRepository().FindAllBySession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	summary := map[string]float64{}
	if len(states) > 0 {
		snapshots := make([]entity.SkillSnapshot, 0, len(states))
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
			summary[st.Skill] = float64(st.Rating)
		}

		sc, err := s.contextSvc.Fetch(ctx, req.SessionId)
		if err != nil {
			return nil, err
		}
		sc.SkillStates = snapshots
		sc.RatingSummary = summary
		if err := s.contextSvc.Store(ctx, req.SessionId, sc); err != nil {
			return nil, err
		}
	}

	return &dto.RecordOutcomeResponse{Ok: true, RatingSummary: summary}, nil
}

func (s *ratingService) updateSkill(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.RecordOutcomeRequest, skill string, hintsUsed int) error {
	repo := uow.SkillStateRepository()
	state, err := repo.FindOne(ctx, req.SessionId, skill)
	if err != nil {
		return err
	}
	if state == nil {
		state = &entity.SkillState{
			SessionId:        req.SessionId,
			Skill:            skill,
			Rating:           constant.DefaultRating,
			TargetDifficulty: req.Difficulty,
		}
	}
	state.AskedCount++
	state.Rating = clampRating(state.Rating + ratingDelta(req.Score, hintsUsed))
	state.TargetDifficulty = req.Difficulty
	if req.Score >= 0.8 {
		state.CorrectCount++
	}
	return repo.Upsert(ctx, state)
}

func (s *ratingService) UpdateDifficulty(ctx context.Context, sessionId string) (*dto.UpdateDifficultyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.AttemptRepository().FindRecentBySession(ctx, sessionId, constant.RecentAttemptWindow)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return &dto.UpdateDifficultyResponse{
			NewLevel:  constant.DefaultTargetDifficulty,
			Rationale: "No attempts yet; maintaining baseline difficulty",
		}, nil
	}

	var total float64
	for _, a := range attempts {
		total += a.Score
	}
	average := total / float64(len(attempts))
	previous := attempts[0].Difficulty
	if previous == 0 {
		previous = constant.DefaultTargetDifficulty
	}

	switch {
	case average >= 0.8 && previous < constant.MaxDifficulty:
		newLevel := previous + 1
		return &dto.UpdateDifficultyResponse{
			NewLevel:  newLevel,
			Rationale: fmt.Sprintf("Average score %.2f >= 0.80; escalating difficulty to %d", average, newLevel),
		}, nil
	case average <= 0.4 && previous > constant.MinDifficulty:
		newLevel := previous - 1
		return &dto.UpdateDifficultyResponse{
			NewLevel:  newLevel,
			Rationale: fmt.Sprintf("Average score %.2f <= 0.40; reducing difficulty to %d", average, newLevel),
		}, nil
	default:
		return &dto.UpdateDifficultyResponse{
			NewLevel:  previous,
			Rationale: fmt.Sprintf("Average score %.2f; keeping difficulty at %d", average, previous),
		}, nil
	}
}

func metaMap(meta map[string]interface{}, key string) map[string]interface{} {
	if m, ok := meta[key].(map[string]interface{}); ok {
		return m
	}
	return nil
}

func metaString(meta map[string]interface{}, key string) string {
	if s, ok := meta[key].(string); ok {
		return s
	}
	return ""
}

func metaInt(meta map[string]interface{}, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
