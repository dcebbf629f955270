package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is the row layout of the kv_records table
type KVRecord struct {
	Key       string    `gorm:"primaryKey;type:varchar(128)"`
	Value     []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for KVRecord
func (KVRecord) TableName() string {
	return "kv_records"
}

// RunMigrations creates or updates the key-value table
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return fmt.Errorf("failed to migrate kv_records: %w", err)
	}
	return nil
}

// GormStore is a KeyValueStore backed by a SQL table through gorm
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormStore creates a GormStore on an already migrated connection
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	return &GormStore{
		db:     db,
		logger: logger,
	}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record KVRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		s.logger.Error("Failed to read key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return record.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := KVRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		s.logger.Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&KVRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
