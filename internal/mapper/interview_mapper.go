package mapper

import (
	"encoding/json"
	"time"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/model"

	"gorm.io/datatypes"
)

type InterviewMapper struct{}

func NewInterviewMapper() *InterviewMapper {
	return &InterviewMapper{}
}

// jsonToMap tolerates null/invalid columns; a payload we cannot decode is
// treated as absent rather than failing the read path.
func jsonToMap(data datatypes.JSON) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func mapToJSON(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (m *InterviewMapper) SessionToEntity(s *model.Session) *entity.Session {
	return &entity.Session{
		Id:            s.Id,
		CandidateName: s.CandidateName,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     optionalTime(s.UpdatedAt),
	}
}

func (m *InterviewMapper) QuestionToEntity(q *model.Question) *entity.Question {
	return &entity.Question{
		Id:         q.Id,
		Skill:      q.Skill,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Prompt:     q.Prompt,
		Weight:     q.Weight,
		Meta:       jsonToMap(q.Meta),
	}
}

func (m *InterviewMapper) QuestionToModel(q *entity.Question) *model.Question {
	return &model.Question{
		Id:         q.Id,
		Skill:      q.Skill,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		Prompt:     q.Prompt,
		Weight:     q.Weight,
		Meta:       mapToJSON(q.Meta),
	}
}

func (m *InterviewMapper) AttemptToEntity(a *model.Attempt) *entity.Attempt {
	return &entity.Attempt{
		Id:            a.Id,
		SessionId:     a.SessionId,
		QuestionId:    a.QuestionId,
		Score:         a.Score,
		Objective:     jsonToMap(a.Objective),
		TimeMs:        a.TimeMs,
		Difficulty:    a.Difficulty,
		AnswerPayload: jsonToMap(a.AnswerPayload),
		Feedback:      a.Feedback,
		HintsUsed:     a.HintsUsed,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *InterviewMapper) AttemptToModel(a *entity.Attempt) *model.Attempt {
	return &model.Attempt{
		Id:            a.Id,
		SessionId:     a.SessionId,
		QuestionId:    a.QuestionId,
		Score:         a.Score,
		Objective:     mapToJSON(a.Objective),
		TimeMs:        a.TimeMs,
		Difficulty:    a.Difficulty,
		AnswerPayload: mapToJSON(a.AnswerPayload),
		Feedback:      a.Feedback,
		HintsUsed:     a.HintsUsed,
		CreatedAt:     a.CreatedAt,
	}
}

func (m *InterviewMapper) SkillStateToEntity(s *model.SessionSkillState) *entity.SkillState {
	return &entity.SkillState{
		Id:               s.Id,
		SessionId:        s.SessionId,
		Skill:            s.Skill,
		Rating:           s.Rating,
		TargetDifficulty: s.TargetDifficulty,
		AskedCount:       s.AskedCount,
		CorrectCount:     s.CorrectCount,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        optionalTime(s.UpdatedAt),
	}
}

func (m *InterviewMapper) SkillStateToModel(s *entity.SkillState) *model.SessionSkillState {
	return &model.SessionSkillState{
		Id:               s.Id,
		SessionId:        s.SessionId,
		Skill:            s.Skill,
		Rating:           s.Rating,
		TargetDifficulty: s.TargetDifficulty,
		AskedCount:       s.AskedCount,
		CorrectCount:     s.CorrectCount,
	}
}

func (m *InterviewMapper) AgentEventToModel(e *entity.AgentEvent) *model.AgentEvent {
	return &model.AgentEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		StepId:    e.StepId,
		Plan:      e.Plan,
		Action:    e.Action,
		Outcome:   e.Outcome,
		Metrics:   mapToJSON(e.Metrics),
		Flagged:   e.Flagged,
	}
}

func (m *InterviewMapper) AgentEventToEntity(e *model.AgentEvent) *entity.AgentEvent {
	return &entity.AgentEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		StepId:    e.StepId,
		Plan:      e.Plan,
		Action:    e.Action,
		Outcome:   e.Outcome,
		Metrics:   jsonToMap(e.Metrics),
		Flagged:   e.Flagged,
		CreatedAt: e.CreatedAt,
	}
}
