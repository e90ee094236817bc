package repository

import (
	"context"
	"errors"
	"testing"

	"recipebox/internal/cache"
	"recipebox/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestUserCreateAndGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "cook@example.com", Password: "hashed", Name: "Cook"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.GetByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserGetByEmail_MissingIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	found, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserGetForUpdate_KeepsHashOnCacheHit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	user := &models.User{Email: "hash@example.com", Password: "bcrypt-hash", Name: "Hash"}
	require.NoError(t, repo.Create(ctx, user))

	// Populate the cache, then confirm the hit drops the hash while the
	// update path still sees it.
	_, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	hit, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, hit.Password)

	forUpdate, err := repo.GetForUpdate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "bcrypt-hash", forUpdate.Password)
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 4242)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserCreate_DuplicateEmailSQLite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "x", Name: "A"}))

	err := repo.Create(ctx, &models.User{Email: "dup@example.com", Password: "y", Name: "B"})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "User with this email already exists", appErr.Message)
}

// The production database is Postgres, whose unique-violation error looks
// nothing like SQLite's. Drive the same path through sqlmock with a
// Postgres-shaped error to cover the SQLSTATE 23505 branch.
func TestUserCreate_DuplicateEmailPostgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	repo := NewUserRepository(db)
	createErr := repo.Create(context.Background(), &models.User{Email: "dup@example.com", Password: "x"})
	require.Error(t, createErr)

	appErr, ok := createErr.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "rename@example.com", Password: "hashed", Name: "Before"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "After"
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Name)
}
