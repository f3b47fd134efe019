package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.QuestionRepository())
	assert.NotNil(t, uow.SkillStateRepository())
	assert.NotNil(t, uow.AttemptRepository())
	assert.NotNil(t, uow.AgentEventRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Question Repository", func(t *testing.T) {
		count, err := uow.QuestionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Question bank holds %d rows", count)
	})

	t.Run("Check Session Lookup", func(t *testing.T) {
		session, err := uow.SessionRepository().FindByID(context.Background(), "integration_probe")
		assert.NoError(t, err)
		assert.Nil(t, session, "probe session should not exist")
	})
}
