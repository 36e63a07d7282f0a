package database

import (
	"fmt"
	"log"

	gormSQLite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// Models возвращает все сущности, хранящиеся в базе
func Models() []interface{} {
	return []interface{}{
		&entity.Quiz{},
		&entity.Question{},
		&entity.Answer{},
		&entity.QuizResult{},
		&entity.Item{},
	}
}

// NewSQLiteDB открывает файл SQLite для локальной разработки и создает схему через AutoMigrate.
// Внешние ключи включаются явно, иначе каскадное удаление и проверка quiz_id не работают.
func NewSQLiteDB(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	db, err := gorm.Open(gormSQLite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return nil, err
	}
	// SQLite не поддерживает параллельную запись
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	log.Printf("[Database] SQLite schema ready at %s", path)
	return db, nil
}
