package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/serverutils"
	"github.com/gofiber/fiber/v2"
)

// IInteractionService accepts interaction events from the voice agent and
// hands them to the async pipeline. The call returns once enqueued; storage,
// transcript mirroring and feed fan-out happen in the consumer.
type IInteractionService interface {
	LogInteraction(ctx context.Context, req *dto.LogInteractionRequest) (*dto.LogInteractionResponse, error)
}

type interactionService struct {
	publisher IPublisherService
	logger    logger.ILogger
}

func NewInteractionService(publisher IPublisherService, log logger.ILogger) IInteractionService {
	return &interactionService{publisher: publisher, logger: log}
}

func (s *interactionService) LogInteraction(ctx context.Context, req *dto.LogInteractionRequest) (*dto.LogInteractionResponse, error) {
	if req.SessionId == "" {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Invalid session_id")
	}
	if !constant.IsInteractionEvent(req.EventType) {
		return nil, serverutils.NewApiError(fiber.StatusBadRequest, "Unknown event_type: "+req.EventType)
	}

	createdAt := time.Now().UTC()
	if req.CreatedAt != nil {
		createdAt = req.CreatedAt.UTC()
	}

	msg := dto.InteractionMessage{
		SessionId: req.SessionId,
		EventType: req.EventType,
		Payload:   req.Payload,
		CreatedAt: createdAt,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, data); err != nil {
		s.logger.Error("InteractionService", "Failed to enqueue interaction", map[string]interface{}{
			"session_id": req.SessionId, "event_type": req.EventType, "error": err.Error(),
		})
		return nil, err
	}

	return &dto.LogInteractionResponse{Ok: true}, nil
}
