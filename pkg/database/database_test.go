package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quizgen-api/internal/config"
	"github.com/yourusername/quizgen-api/migrations"
)

func TestNewSQLiteDB_CreatesSchema(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "quizgen.db")

	// Act
	db, err := NewSQLiteDB(path, logger.Silent)

	// Assert
	require.NoError(t, err)
	for _, table := range []string{"quizzes", "questions", "answers", "quiz_results", "backend_items"} {
		assert.True(t, db.Migrator().HasTable(table), "Таблица %s должна существовать", table)
	}

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk, "Внешние ключи должны быть включены")
}

func TestEmbeddedMigrations_AreReadable(t *testing.T) {
	source, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	version := first
	count := 1
	for {
		next, err := source.Next(version)
		if err != nil {
			break
		}
		version = next
		count++
	}
	assert.Equal(t, 3, count, "Ожидается три версии миграций")

	up, _, err := source.ReadUp(2)
	require.NoError(t, err)
	defer up.Close()
}

func TestNewUniversalRedisClient_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewUniversalRedisClient(ctx, config.RedisConfig{})
	assert.Error(t, err, "Без адреса клиент не создается")

	_, err = NewUniversalRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:6379", Mode: "sentinel"})
	assert.Error(t, err, "Sentinel требует MasterName")

	_, err = NewUniversalRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:6379", Mode: "bogus"})
	assert.Error(t, err)
}
