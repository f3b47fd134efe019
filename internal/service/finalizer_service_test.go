package service

import (
	"context"
	"testing"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmail struct {
	sent      int
	lastTo    string
	lastBody  string
	lastURL   string
	returnErr error
}

func (f *fakeEmail) SendSessionSummary(toEmail, sessionId, summary, reportURL string) error {
	f.sent++
	f.lastTo = toEmail
	f.lastBody = summary
	f.lastURL = reportURL
	return f.returnErr
}

func newFinalizerFixture(cfg *config.Config) (*fakeUow, IContextService, *fakeEmail, IFinalizerService) {
	uow := newFakeUow()
	cache := newFakeCache()
	fallback := memory.NewContextRepository()
	contextSvc := NewContextService(&fakeFactory{uow: uow}, cache, fallback, nopLogger{})
	email := &fakeEmail{}
	svc := NewFinalizerService(&fakeFactory{uow: uow}, contextSvc, email, cfg, nopLogger{})
	return uow, contextSvc, email, svc
}

func baseConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{ReportBaseURL: "https://reports.example.com"},
	}
}

func TestFinalizeRejectsEmptySession(t *testing.T) {
	_, _, _, svc := newFinalizerFixture(baseConfig())

	_, err := svc.FinalizeSession(context.Background(), "")
	require.Error(t, err)
}

func TestFinalizeEmptySessionSummary(t *testing.T) {
	_, _, _, svc := newFinalizerFixture(baseConfig())

	res, err := svc.FinalizeSession(context.Background(), "sess_fresh")
	require.NoError(t, err)

	assert.Equal(t, "https://reports.example.com/sess_fresh", res.ReportURL)
	assert.Equal(t,
		"We covered 0 questions; your overall score sits at 0/100.\n"+
			"Strengths: Excel fundamentals.\n"+
			"Focus areas: refining explanations to add more detail.",
		res.Summary)
}

func TestFinalizeSummarizesRatings(t *testing.T) {
	uow, contextSvc, _, svc := newFinalizerFixture(baseConfig())

	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_done", Score: 0.8},
		{SessionId: "sess_done", Score: 0.6},
	}
	sc, err := contextSvc.Fetch(context.Background(), "sess_done")
	require.NoError(t, err)
	sc.RatingSummary = map[string]float64{
		"excel_basics": 80,
	}
	require.NoError(t, contextSvc.Store(context.Background(), "sess_done", sc))

	res, err := svc.FinalizeSession(context.Background(), "sess_done")
	require.NoError(t, err)

	assert.Equal(t,
		"We covered 2 questions; your overall score sits at 80/100.\n"+
			"Strengths: excel basics.\n"+
			"Focus areas: refining explanations to add more detail.",
		res.Summary)
}

func TestFinalizeSplitsStrengthsAndGrowth(t *testing.T) {
	_, contextSvc, _, svc := newFinalizerFixture(baseConfig())

	sc, err := contextSvc.Fetch(context.Background(), "sess_mix")
	require.NoError(t, err)
	sc.RatingSummary = map[string]float64{
		"excel_analysis": 55, // growth (<60)
		"excel_basics":   65, // neither bucket
	}
	require.NoError(t, contextSvc.Store(context.Background(), "sess_mix", sc))

	res, err := svc.FinalizeSession(context.Background(), "sess_mix")
	require.NoError(t, err)

	assert.Contains(t, res.Summary, "Strengths: Excel fundamentals.")
	assert.Contains(t, res.Summary, "Focus areas: excel analysis.")
	assert.Contains(t, res.Summary, "your overall score sits at 60/100")
}

func TestFinalizeSummaryOrderIsStable(t *testing.T) {
	_, contextSvc, _, svc := newFinalizerFixture(baseConfig())

	sc, err := contextSvc.Fetch(context.Background(), "sess_order")
	require.NoError(t, err)
	sc.RatingSummary = map[string]float64{
		"professionalism": 85,
		"excel_basics":    90,
		"excel_formulas":  40,
		"excel_analysis":  30,
	}
	require.NoError(t, contextSvc.Store(context.Background(), "sess_order", sc))

	// Skill buckets list alphabetically regardless of map iteration order.
	for i := 0; i < 5; i++ {
		res, err := svc.FinalizeSession(context.Background(), "sess_order")
		require.NoError(t, err)
		assert.Contains(t, res.Summary, "Strengths: excel basics, professionalism.")
		assert.Contains(t, res.Summary, "Focus areas: excel analysis, excel formulas.")
	}
}

func TestFinalizeFallsBackToAttemptAverage(t *testing.T) {
	uow, _, _, svc := newFinalizerFixture(baseConfig())
	uow.attempts.attempts = []*entity.Attempt{
		{SessionId: "sess_avg", Score: 0.5},
		{SessionId: "sess_avg", Score: 0.7},
	}

	res, err := svc.FinalizeSession(context.Background(), "sess_avg")
	require.NoError(t, err)
	// fractional attempt scores scale to /100 when no ratings exist
	assert.Contains(t, res.Summary, "your overall score sits at 60/100")
}

func TestFinalizeSendsSummaryEmailWhenConfigured(t *testing.T) {
	cfg := baseConfig()
	cfg.SMTP.SummaryRecipient = "talent@example.com"
	_, _, email, svc := newFinalizerFixture(cfg)

	res, err := svc.FinalizeSession(context.Background(), "sess_mail")
	require.NoError(t, err)
	assert.Equal(t, 1, email.sent)
	assert.Equal(t, "talent@example.com", email.lastTo)
	assert.Equal(t, res.Summary, email.lastBody)
	assert.Equal(t, res.ReportURL, email.lastURL)
}

func TestFinalizeSwallowsEmailFailures(t *testing.T) {
	cfg := baseConfig()
	cfg.SMTP.SummaryRecipient = "talent@example.com"
	_, _, email, svc := newFinalizerFixture(cfg)
	email.returnErr = assert.AnError

	res, err := svc.FinalizeSession(context.Background(), "sess_mailfail")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Summary)
}
