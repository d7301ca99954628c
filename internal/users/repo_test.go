package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/personal/coffee-catalog-backend/pkg/db"
	"github.com/personal/coffee-catalog-backend/pkg/db/models"
	"github.com/personal/coffee-catalog-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	created, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        "finder@example.com",
		PasswordHash: "digest",
		FirstName:    "Fin",
		LastName:     "Der",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RoleUser, created.Role)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", created.ID.String())

	byEmail, err := repo.FindByEmail(context.Background(), "finder@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "finder@example.com", byID.Email)
}

func TestRepositoryFindByEmailIsCaseSensitive(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	_, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        "Case@Example.com",
		PasswordHash: "digest",
		FirstName:    "Ca",
		LastName:     "Se",
	})
	require.NoError(t, err)

	_, err = repo.FindByEmail(context.Background(), "case@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))

	dto := CreateUserDTO{
		Email:        "dup@example.com",
		PasswordHash: "digest",
		FirstName:    "Du",
		LastName:     "Plicate",
	}
	_, err := repo.Create(context.Background(), dto)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), dto)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "idx_users_email"))
}
