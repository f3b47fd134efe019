package memory

import (
	"testing"

	"ai-interview-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRepositoryRoundTrip(t *testing.T) {
	repo := NewContextRepository()

	_, found := repo.Get("sess_1")
	assert.False(t, found)

	repo.Save(&entity.SessionContext{SessionId: "sess_1", Stage: "core", PlanIndex: 2})

	sc, found := repo.Get("sess_1")
	require.True(t, found)
	assert.Equal(t, "core", sc.Stage)
	assert.Equal(t, 2, sc.PlanIndex)
}

func TestContextRepositorySaveOverwrites(t *testing.T) {
	repo := NewContextRepository()
	repo.Save(&entity.SessionContext{SessionId: "sess_1", PlanIndex: 1})
	repo.Save(&entity.SessionContext{SessionId: "sess_1", PlanIndex: 3})

	sc, found := repo.Get("sess_1")
	require.True(t, found)
	assert.Equal(t, 3, sc.PlanIndex)
}

func TestContextRepositoryDelete(t *testing.T) {
	repo := NewContextRepository()
	repo.Save(&entity.SessionContext{SessionId: "sess_1"})
	repo.Delete("sess_1")

	_, found := repo.Get("sess_1")
	assert.False(t, found)
}
