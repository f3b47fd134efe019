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

type AttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewAttemptRepository(db *gorm.DB) contract.AttemptRepository {
	return &AttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *AttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.Attempt) error {
	m := r.mapper.AttemptToModel(attempt)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.AttemptToEntity(m)
	return nil
}

func (r *AttemptRepositoryImpl) FindRecentBySession(ctx context.Context, sessionId string, limit int) ([]*entity.Attempt, error) {
	var models []*model.Attempt
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *AttemptRepositoryImpl) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.Attempt, error) {
	var models []*model.Attempt
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *AttemptRepositoryImpl) toEntities(models []*model.Attempt) []*entity.Attempt {
	entities := make([]*entity.Attempt, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AttemptToEntity(m)
	}
	return entities
}
