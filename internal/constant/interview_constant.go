package constant

// Session lifecycle statuses (owned by the external session bootstrap).
const (
	SessionStatusCreated    = "created"
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
)

// Interview stages derived from session status.
const (
	StageIntro = "intro"
	StageCore  = "core"
	StageWrap  = "wrap"
)

// Question types. Anything outside this list is graded by the rubric strategy.
const (
	QuestionTypeMCQ          = "mcq"
	QuestionTypeShortText    = "short_text"
	QuestionTypeShortcut     = "shortcut"
	QuestionTypeFormula      = "formula"
	QuestionTypeExcelFormula = "excel_formula"
	QuestionTypeOpen         = "open"
	QuestionTypeBehavioral   = "behavioral"
)

// Interaction event types accepted by log_interaction.
const (
	EventQuestionAsked  = "question_asked"
	EventAnswerReceived = "answer_received"
	EventFeedbackShared = "feedback_shared"
	EventHintRequested  = "hint_requested"
	EventTimerMark      = "timer_mark"
	EventPlan           = "plan"
	EventReflection     = "reflection"
	EventAnomaly        = "anomaly"
)

// IsTranscriptEvent reports whether an interaction event belongs in the
// session transcript (the rest are agent bookkeeping only).
func IsTranscriptEvent(eventType string) bool {
	switch eventType {
	case EventQuestionAsked, EventAnswerReceived, EventFeedbackShared:
		return true
	}
	return false
}

// IsInteractionEvent reports whether the event type is one the API accepts.
func IsInteractionEvent(eventType string) bool {
	switch eventType {
	case EventQuestionAsked, EventAnswerReceived, EventFeedbackShared,
		EventHintRequested, EventTimerMark, EventPlan, EventReflection, EventAnomaly:
		return true
	}
	return false
}

// Skill-state and difficulty defaults.
const (
	DefaultRating           = 50
	DefaultTargetDifficulty = 2
	MinDifficulty           = 1
	MaxDifficulty           = 3

	// Window sizes for adaptive recomputation and context transcript.
	RecentAttemptWindow = 3
	TranscriptWindow    = 10

	// Candidate fetch cap for plan-target question lookups.
	QuestionListLimit = 50
)
