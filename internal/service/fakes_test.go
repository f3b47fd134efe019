package service

import (
	"context"
	"sort"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
)

// In-memory doubles for the repository layer. They interpret the same
// specifications the services pass to the real gorm implementations.

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	err      error
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[id], nil
}

type fakeQuestionRepo struct {
	questions []*entity.Question
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *entity.Question) error {
	f.questions = append(f.questions, q)
	return nil
}

func (f *fakeQuestionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	matches, err := f.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (f *fakeQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	var (
		skill        string
		difficulty   int
		byDifficulty bool
		bySkill      bool
		byID         string
		hasByID      bool
		orderFields  []string
		limit        int
	)
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.BySkill:
			bySkill, skill = true, sp.Skill
		case specification.ByDifficulty:
			byDifficulty, difficulty = true, sp.Difficulty
		case specification.ByID:
			hasByID, byID = true, sp.ID
		case specification.OrderBy:
			orderFields = append(orderFields, sp.Field)
		case specification.Limit:
			limit = sp.N
		}
	}

	var out []*entity.Question
	for _, q := range f.questions {
		if bySkill && q.Skill != skill {
			continue
		}
		if byDifficulty && q.Difficulty != difficulty {
			continue
		}
		if hasByID && q.Id != byID {
			continue
		}
		out = append(out, q)
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, field := range orderFields {
			switch field {
			case "difficulty":
				if out[i].Difficulty != out[j].Difficulty {
					return out[i].Difficulty < out[j].Difficulty
				}
			case "id":
				if out[i].Id != out[j].Id {
					return out[i].Id < out[j].Id
				}
			}
		}
		return false
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeQuestionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := f.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

type fakeSkillStateRepo struct {
	states []*entity.SkillState
	err    error
}

func (f *fakeSkillStateRepo) Upsert(ctx context.Context, state *entity.SkillState) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.states {
		if existing.SessionId == state.SessionId && existing.Skill == state.Skill {
			cp := *state
			f.states[i] = &cp
			return nil
		}
	}
	cp := *state
	f.states = append(f.states, &cp)
	return nil
}

func (f *fakeSkillStateRepo) FindOne(ctx context.Context, sessionId, skill string) (*entity.SkillState, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, st := range f.states {
		if st.SessionId == sessionId && st.Skill == skill {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSkillStateRepo) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.SkillState, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.SkillState
	for _, st := range f.states {
		if st.SessionId == sessionId {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts []*entity.Attempt
}

func (f *fakeAttemptRepo) Create(ctx context.Context, attempt *entity.Attempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

// newest-first, like the gorm implementation
func (f *fakeAttemptRepo) FindRecentBySession(ctx context.Context, sessionId string, limit int) ([]*entity.Attempt, error) {
	all, _ := f.FindAllBySession(ctx, sessionId)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeAttemptRepo) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.Attempt, error) {
	var out []*entity.Attempt
	for i := len(f.attempts) - 1; i >= 0; i-- {
		if f.attempts[i].SessionId == sessionId {
			out = append(out, f.attempts[i])
		}
	}
	return out, nil
}

type fakeAgentEventRepo struct {
	events []*entity.AgentEvent
}

func (f *fakeAgentEventRepo) Create(ctx context.Context, event *entity.AgentEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAgentEventRepo) FindAllBySession(ctx context.Context, sessionId string) ([]*entity.AgentEvent, error) {
	var out []*entity.AgentEvent
	for _, e := range f.events {
		if e.SessionId == sessionId {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUow struct {
	sessions    *fakeSessionRepo
	questions   *fakeQuestionRepo
	skillStates *fakeSkillStateRepo
	attempts    *fakeAttemptRepo
	agentEvents *fakeAgentEventRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sessions:    &fakeSessionRepo{sessions: map[string]*entity.Session{}},
		questions:   &fakeQuestionRepo{},
		skillStates: &fakeSkillStateRepo{},
		attempts:    &fakeAttemptRepo{},
		agentEvents: &fakeAgentEventRepo{},
	}
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) SessionRepository() contract.SessionRepository       { return f.sessions }
func (f *fakeUow) QuestionRepository() contract.QuestionRepository     { return f.questions }
func (f *fakeUow) SkillStateRepository() contract.SkillStateRepository { return f.skillStates }
func (f *fakeUow) AttemptRepository() contract.AttemptRepository       { return f.attempts }
func (f *fakeUow) AgentEventRepository() contract.AgentEventRepository { return f.agentEvents }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeCache mimics the error-free cache contract with plain maps.
type fakeCache struct {
	contexts    map[string]*entity.SessionContext
	transcripts map[string][]entity.TranscriptTurn
	disabled    bool // simulate an unavailable backend: misses and dropped writes
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		contexts:    map[string]*entity.SessionContext{},
		transcripts: map[string][]entity.TranscriptTurn{},
	}
}

func (f *fakeCache) GetContext(ctx context.Context, sessionId string) *entity.SessionContext {
	if f.disabled {
		return nil
	}
	sc, ok := f.contexts[sessionId]
	if !ok {
		return nil
	}
	cp := *sc
	return &cp
}

func (f *fakeCache) SetContext(ctx context.Context, sessionId string, sc *entity.SessionContext) {
	if f.disabled {
		return
	}
	cp := *sc
	f.contexts[sessionId] = &cp
}

func (f *fakeCache) AppendTranscript(ctx context.Context, sessionId string, turn entity.TranscriptTurn) {
	if f.disabled {
		return
	}
	f.transcripts[sessionId] = append(f.transcripts[sessionId], turn)
}

func (f *fakeCache) RecentTranscript(ctx context.Context, sessionId string, limit int) []entity.TranscriptTurn {
	if f.disabled {
		return nil
	}
	turns := f.transcripts[sessionId]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}
