package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/database"

	"github.com/google/uuid"
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

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.AuditLogRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Note Repository", func(t *testing.T) {
		count, err := uow.NoteRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Note count: %d", count)
	})

	t.Run("Check Transactional Signup With Provider Link", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:        userId,
			Email:     "test-integration-" + uuid.New().String() + "@example.com",
			FullName:  "Integration Test User",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		err = uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		link := &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         userId,
			ProviderName:   "google",
			ProviderUserId: "integration-" + uuid.New().String(),
			CreatedAt:      time.Now(),
		}
		err = uow.UserRepository().SaveUserProvider(ctx, link)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created User with Provider link in Transaction")
	})

	t.Run("Check Owner Scoped Note Listing", func(t *testing.T) {
		ctx := context.Background()

		owner := &entity.User{
			Id:        uuid.New(),
			Email:     "test-owner-" + uuid.New().String() + "@example.com",
			FullName:  "Owner",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		err := uow.UserRepository().Create(ctx, owner)
		assert.NoError(t, err)

		note := &entity.Note{
			Id:        uuid.New(),
			Title:     "integration note",
			Content:   "body",
			UserId:    owner.Id,
			CreatedAt: time.Now(),
		}
		err = uow.NoteRepository().Create(ctx, note)
		assert.NoError(t, err)

		owned, err := uow.NoteRepository().FindAll(ctx, specification.OwnedBy{UserID: owner.Id})
		assert.NoError(t, err)
		assert.Len(t, owned, 1)

		stranger, err := uow.NoteRepository().FindAll(ctx, specification.OwnedBy{UserID: uuid.New()})
		assert.NoError(t, err)
		assert.Len(t, stranger, 0)

		// Cleanup
		err = uow.NoteRepository().Delete(ctx, note.Id)
		assert.NoError(t, err)
	})
}
