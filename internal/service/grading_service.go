package service

import (
	"context"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/grading"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
)

// IGradingService resolves the question behind a submission and routes it
// through the grading dispatcher. An unknown question id still grades: the
// rubric strategy handles the nil-question case.
type IGradingService interface {
	GradeAnswer(ctx context.Context, req *dto.GradeAnswerRequest) (*dto.GradeAnswerResponse, error)
}

type gradingService struct {
	uowFactory unitofwork.RepositoryFactory
	dispatcher *grading.Dispatcher
	logger     logger.ILogger
}

func NewGradingService(uowFactory unitofwork.RepositoryFactory, dispatcher *grading.Dispatcher, log logger.ILogger) IGradingService {
	return &gradingService{uowFactory: uowFactory, dispatcher: dispatcher, logger: log}
}

func (s *gradingService) GradeAnswer(ctx context.Context, req *dto.GradeAnswerRequest) (*dto.GradeAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: req.QuestionId})
	if err != nil {
		return nil, err
	}

	questionType := constant.QuestionTypeOpen
	if question != nil && question.Type != "" {
		questionType = question.Type
	}

	result := s.dispatcher.Grade(ctx, questionType, grading.Input{
		Question: question,
		Answer:   req.AnswerPayload,
	})

	s.logger.Debug("GradingService", "Answer graded", map[string]interface{}{
		"session_id":  req.SessionId,
		"question_id": req.QuestionId,
		"type":        questionType,
		"score":       result.Score,
	})

	return &dto.GradeAnswerResponse{
		Score:        result.Score,
		Objective:    result.Objective,
		Notes:        result.Notes,
		AutoFeedback: result.AutoFeedback,
		Confidence:   result.Confidence,
	}, nil
}
