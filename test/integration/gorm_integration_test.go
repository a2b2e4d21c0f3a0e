package integration

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/dhanushgc/HireMind/internal/config"
	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/entity"
	"github.com/dhanushgc/HireMind/internal/model"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/specification"
	"github.com/dhanushgc/HireMind/internal/repository/unitofwork"
	"github.com/dhanushgc/HireMind/pkg/database"
	"github.com/dhanushgc/HireMind/pkg/interview/followup"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
	"github.com/dhanushgc/HireMind/pkg/lock"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, "warn")
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error)
	require.NoError(t, db.AutoMigrate(&model.InterviewSession{}, &model.ContextSnippet{}))
	return db
}

func TestSessionRepositoryCompareAndSwap(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	repo := uow.InterviewSessionRepository()

	candidate := "it-" + uuid.NewString()
	session := entity.NewInterviewSession(candidate, "job", []string{"T1"}, []string{constant.CategoryTechnical}, "ctx", time.Now())
	t.Cleanup(func() {
		db.Where("session_key = ?", session.SessionKey).Delete(&model.InterviewSession{})
	})

	require.NoError(t, repo.Upsert(ctx, session))

	loaded, err := repo.FindByKey(ctx, session.SessionKey)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{""}, loaded.Answers)

	loaded.Answers[0] = "answer"
	ok, err := repo.CompareAndSwap(ctx, loaded, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), loaded.Version)

	stale := loaded.Clone()
	stale.Answers[0] = "stale"
	ok, err = repo.CompareAndSwap(ctx, stale, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := repo.FindByKey(ctx, "nobody:nothing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestConcurrentFollowUpsAgainstPostgres(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).InterviewSessionRepository()
	sessionStore := store.NewSessionStore(repo, lock.NewKeyedMutex(), logger.NewNopLogger())

	candidate := "it-" + uuid.NewString()
	session := entity.NewInterviewSession(candidate, "job",
		[]string{"T1", "T2", "L1", "L2"},
		[]string{"technical", "technical", "leadership", "leadership"}, "", time.Now())
	t.Cleanup(func() {
		db.Where("session_key = ?", session.SessionKey).Delete(&model.InterviewSession{})
	})
	require.NoError(t, sessionStore.Put(ctx, session))

	policy := followup.NewPolicy(sessionStore, logger.NewNopLogger())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := policy.Apply(ctx, session.SessionKey, followup.Decision{
				Classification: constant.ClassificationVague,
				FollowUp:       "Could you expand?",
				GenerationId:   session.GenerationId,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := sessionStore.Get(ctx, session.SessionKey)
	require.NoError(t, err)
	assert.Equal(t, 5, final.Len())
	assert.True(t, final.Consistent())
}

func TestContextSnippetsOrderedByChunk(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).ContextSnippetRepository()

	refId := "it-" + uuid.NewString()
	t.Cleanup(func() {
		db.Where("ref_id = ?", refId).Delete(&model.ContextSnippet{})
	})

	require.NoError(t, repo.CreateBulk(ctx, []*entity.ContextSnippet{
		{Type: constant.SourceResume, RefId: refId, Document: "second", ChunkIndex: 1},
		{Type: constant.SourceResume, RefId: refId, Document: "first", ChunkIndex: 0},
	}))

	found, err := repo.FindAll(ctx, specification.BySource{Type: constant.SourceResume, RefId: refId})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "first", found[0].Document)
	assert.Equal(t, "second", found[1].Document)
}
