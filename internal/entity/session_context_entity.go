package entity

// PlanEntry is one curriculum step: which skill to probe and at which
// difficulty.
type PlanEntry struct {
	Skill      string `json:"skill"`
	Difficulty int    `json:"difficulty"`
}

// QuestionSnapshot is the last-served question as remembered by the context.
type QuestionSnapshot struct {
	Id         string                 `json:"id"`
	Skill      string                 `json:"skill"`
	Difficulty int                    `json:"difficulty"`
	Type       string                 `json:"type"`
	Prompt     string                 `json:"prompt"`
	Weight     float64                `json:"weight"`
	Meta       map[string]interface{} `json:"meta"`
}

// SkillSnapshot is the context-level projection of a SkillState row.
type SkillSnapshot struct {
	Skill            string `json:"skill"`
	Rating           int    `json:"rating"`
	TargetDifficulty int    `json:"target_difficulty"`
	AskedCount       int    `json:"asked_count"`
	CorrectCount     int    `json:"correct_count"`
}

// TranscriptTurn is one recent interaction event mirrored into the context.
type TranscriptTurn struct {
	EventType string                 `json:"event_type"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt string                 `json:"created_at"`
}

// SessionContext is the central mutable aggregate, one per session. It lives
// in the cache (fast, may be evicted) and in the process-local fallback table;
// the durable store rebuilds it on a full miss. JSON tags define the cache
// wire shape.
type SessionContext struct {
	SessionId        string             `json:"session_id"`
	Stage            string             `json:"stage"`
	SkillRotation    []string           `json:"skill_rotation"`
	PendingFollowups []string           `json:"pending_followups"`
	SkillStates      []SkillSnapshot    `json:"skill_states"`
	RatingSummary    map[string]float64 `json:"rating_summary"`
	RecentTranscript []TranscriptTurn   `json:"recent_transcript"`
	QuestionPlan     []PlanEntry        `json:"question_plan"`
	PlanIndex        int                `json:"plan_index"`
	AskedQuestions   []string           `json:"asked_questions"`
	CurrentQuestion  *QuestionSnapshot  `json:"current_question"`
}

// HasAsked reports whether a question id was already served this session.
func (c *SessionContext) HasAsked(questionId string) bool {
	for _, id := range c.AskedQuestions {
		if id == questionId {
			return true
		}
	}
	return false
}

// MarkAsked appends to the asked set. The set never shrinks.
func (c *SessionContext) MarkAsked(questionId string) {
	c.AskedQuestions = append(c.AskedQuestions, questionId)
}

// PlanExhausted reports whether the cursor has walked past the curriculum.
func (c *SessionContext) PlanExhausted() bool {
	return c.PlanIndex >= len(c.QuestionPlan)
}

// Remaining is the number of curriculum steps left, never negative.
func (c *SessionContext) Remaining() int {
	if r := len(c.QuestionPlan) - c.PlanIndex; r > 0 {
		return r
	}
	return 0
}
