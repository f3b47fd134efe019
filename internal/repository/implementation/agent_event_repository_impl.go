package implementation

import (
	"context"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/mapper"
	"ai-interview-be/internal/model"
	"ai-interview-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewAgentEventRepository(db *gorm.DB) contract.AgentEventRepository {
	return &AgentEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *AgentEventRepositoryImpl) Create(ctx context.Context, event *entity.AgentEvent) error {
	m := r.mapper.AgentEventToModel(event)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.AgentEventToEntity(m)
	return nil
}

func (r *AgentEventRepositoryImpl) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.AgentEvent, error) {
	var models []*model.AgentEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.AgentEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AgentEventToEntity(m)
	}
	return entities, nil
}
