package dto

import (
	"time"
)

type SessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type QuestionDTO struct {
	Id         string                 `json:"id"`
	Skill      string                 `json:"skill"`
	Difficulty int                    `json:"difficulty"`
	Type       string                 `json:"type"`
	Prompt     string                 `json:"prompt"`
	Weight     float64                `json:"weight"`
	Meta       map[string]interface{} `json:"meta"`
}

type GetNextQuestionResponse struct {
	Question      *QuestionDTO       `json:"question"`
	RatingSummary map[string]float64 `json:"rating_summary"`
	PlanIndex     int                `json:"plan_index"`
	Remaining     *int               `json:"remaining"`
	Completed     bool               `json:"completed"`
}

type GradeAnswerRequest struct {
	SessionId     string                 `json:"session_id" validate:"required"`
	QuestionId    string                 `json:"question_id" validate:"required"`
	AnswerPayload map[string]interface{} `json:"answer_payload"`
}

type GradeAnswerResponse struct {
	Score        float64                `json:"score"`
	Objective    map[string]interface{} `json:"objective,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	AutoFeedback string                 `json:"auto_feedback,omitempty"`
	Confidence   *float64               `json:"confidence,omitempty"`
}

type RecordOutcomeRequest struct {
	SessionId  string                 `json:"session_id" validate:"required"`
	QuestionId string                 `json:"question_id"`
	Score      float64                `json:"score"`
	TimeMs     int                    `json:"time_ms"`
	Difficulty int                    `json:"difficulty"`
	Meta       map[string]interface{} `json:"meta"`
}

type RecordOutcomeResponse struct {
	Ok            bool               `json:"ok"`
	RatingSummary map[string]float64 `json:"rating_summary"`
}

type UpdateDifficultyResponse struct {
	NewLevel  int    `json:"new_level"`
	Rationale string `json:"rationale"`
}

type FinalizeSessionResponse struct {
	ReportURL string `json:"report_url"`
	Summary   string `json:"summary"`
}

type LogInteractionRequest struct {
	SessionId string                 `json:"session_id" validate:"required"`
	EventType string                 `json:"event_type" validate:"required"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt *time.Time             `json:"created_at"`
}

type LogInteractionResponse struct {
	Ok bool `json:"ok"`
}

// InteractionMessage is the wire shape published on the interaction topic and
// consumed by the persistence worker.
type InteractionMessage struct {
	SessionId string                 `json:"session_id"`
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}
