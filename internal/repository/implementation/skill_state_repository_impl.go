package implementation

import (
	"context"
	"errors"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/mapper"
	"ai-interview-be/internal/model"
	"ai-interview-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewSkillStateRepository(db *gorm.DB) contract.SkillStateRepository {
	return &SkillStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *SkillStateRepositoryImpl) Upsert(ctx context.Context, state *entity.SkillState) error {
	m := r.mapper.SkillStateToModel(state)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "skill"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rating", "target_difficulty", "asked_count", "correct_count", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*state = *r.mapper.SkillStateToEntity(m)
	return nil
}

func (r *SkillStateRepositoryImpl) FindOne(ctx context.Context, sessionId, skill string) (*entity.SkillState, error) {
	var m model.SessionSkillState
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND skill = ?", sessionId, skill).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SkillStateToEntity(&m), nil
}

func (r *SkillStateRepositoryImpl) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.SkillState, error) {
	var models []*model.SessionSkillState
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("skill ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	entities := make([]*entity.SkillState, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SkillStateToEntity(m)
	}
	return entities, nil
}
