package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/internal/websocket"
	"ai-interview-be/pkg/events"
	pkgnats "ai-interview-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the interaction topic: each message becomes an
// agent event row, a transcript append (for candidate-visible events), a feed
// broadcast and a lifecycle publish to the external bus.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	cache      contract.ContextCache
	hub        *websocket.Hub
	natsPub    *pkgnats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	cache contract.ContextCache,
	hub *websocket.Hub,
	natsPub *pkgnats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		cache:      cache,
		hub:        hub,
		natsPub:    natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InteractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal interaction message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	event := agentEventFrom(&payload)
	if err := uow.AgentEventRepository().Create(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to persist agent event for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if constant.IsTranscriptEvent(payload.EventType) {
		cs.cache.AppendTranscript(ctx, payload.SessionId, entity.TranscriptTurn{
			EventType: payload.EventType,
			Payload:   payload.Payload,
			CreatedAt: payload.CreatedAt.Format(time.RFC3339),
		})
	}

	cs.hub.Broadcast(payload.SessionId, map[string]interface{}{
		"session_id": payload.SessionId,
		"event_type": payload.EventType,
		"payload":    payload.Payload,
		"created_at": payload.CreatedAt.Format(time.RFC3339),
	})

	if cs.natsPub != nil {
		evt := events.BaseEvent{
			Type: payload.EventType,
			Data: map[string]interface{}{
				"session_id": payload.SessionId,
				"event_type": payload.EventType,
				"payload":    payload.Payload,
			},
			OccurredAt: payload.CreatedAt,
		}
		if err := cs.natsPub.Publish(ctx, evt); err != nil {
			// External bus is best-effort; the durable row already exists.
			log.Printf("[WARN] Failed to publish interaction to NATS: %v", err)
		}
	}

	msg.Ack()
}

// agentEventFrom flattens the free-form payload into the agent event shape.
// Missing fields fall back to the event type so rows stay queryable.
func agentEventFrom(m *dto.InteractionMessage) *entity.AgentEvent {
	data := m.Payload
	if data == nil {
		data = map[string]interface{}{}
	}

	metrics, _ := data["metrics"].(map[string]interface{})
	flagged, _ := data["flagged"].(bool)

	return &entity.AgentEvent{
		SessionId: m.SessionId,
		StepId:    stringOr(data, "step_id", m.EventType),
		Plan:      stringOr(data, "plan", m.EventType),
		Action:    stringOr(data, "action", stringOr(data, "utterance", m.EventType)),
		Outcome:   stringOr(data, "outcome", stringOr(data, "result", "logged")),
		Metrics:   metrics,
		Flagged:   flagged,
		CreatedAt: m.CreatedAt,
	}
}

func stringOr(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return fallback
}
