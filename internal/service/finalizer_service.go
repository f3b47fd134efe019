package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/mailer"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/repository/unitofwork"
	"github.com/gofiber/fiber/v2"
)

// IFinalizerService closes out a session: aggregates attempts and ratings
// into a human-readable summary and a report link, optionally mailing it.
type IFinalizerService interface {
	FinalizeSession(ctx context.Context, sessionId string) (*dto.FinalizeSessionResponse, error)
}

type finalizerService struct {
	uowFactory unitofwork.RepositoryFactory
	contextSvc IContextService
	email      mailer.IEmailService
	cfg        *config.Config
	logger     logger.ILogger
}

func NewFinalizerService(
	uowFactory unitofwork.RepositoryFactory,
	contextSvc IContextService,
	email mailer.IEmailService,
	cfg *config.Config,
	log logger.ILogger,
) IFinalizerService {
	return &finalizerService{
		uowFactory: uowFactory,
		contextSvc: contextSvc,
		email:      email,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *finalizerService) FinalizeSession(ctx context.Context, sessionId string) (*dto.FinalizeSessionResponse, error) {
	if sessionId == "" {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Invalid session_id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	attempts, err := uow.AttemptRepository().FindAllBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var averageScore float64
	if len(attempts) > 0 {
		var total float64
		for _, a := range attempts {
			total += a.Score
		}
		averageScore = total / float64(len(attempts))
	}

	sc, err := s.contextSvc.Fetch(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	skills := make([]string, 0, len(sc.RatingSummary))
	for skill := range sc.RatingSummary {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	strengths := make([]string, 0)
	growth := make([]string, 0)
	for _, skill := range skills {
		rating := sc.RatingSummary[skill]
		readable := strings.ReplaceAll(skill, "_", " ")
		if rating >= 70 {
			strengths = append(strengths, readable)
		}
		if rating < 60 {
			growth = append(growth, readable)
		}
	}
	if len(strengths) == 0 {
		strengths = []string{"Excel fundamentals"}
	}
	if len(growth) == 0 {
		growth = []string{"refining explanations to add more detail"}
	}

	var overall float64
	if len(sc.RatingSummary) > 0 {
		var total float64
		for _, rating := range sc.RatingSummary {
			total += rating
		}
		overall = total / float64(len(sc.RatingSummary))
	} else if averageScore <= 1 {
		overall = averageScore * 100
	} else {
		overall = averageScore
	}

	summary := fmt.Sprintf(
		"We covered %d questions; your overall score sits at %.0f/100.\nStrengths: %s.\nFocus areas: %s.",
		len(attempts), overall, strings.Join(strengths, ", "), strings.Join(growth, ", "),
	)
	reportURL := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.App.ReportBaseURL, "/"), sessionId)

	if recipient := s.cfg.SMTP.SummaryRecipient; recipient != "" {
		if err := s.email.SendSessionSummary(recipient, sessionId, summary, reportURL); err != nil {
			s.logger.Warn("FinalizerService", "Summary email failed", map[string]interface{}{
				"session_id": sessionId, "error": err.Error(),
			})
		}
	}

	return &dto.FinalizeSessionResponse{ReportURL: reportURL, Summary: summary}, nil
}
