// utils/storage_db.go
package utils

import (
	"context"
	"errors"
	"fmt"

	"match-tracker/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStorage persists keys in the stored_values table.
type DBStorage struct {
	DB *gorm.DB
}

// OpenDBStorage connects to postgres and migrates the stored_values table.
func OpenDBStorage(dsn string) (*DBStorage, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDBStorage(db)
}

func NewDBStorage(db *gorm.DB) (*DBStorage, error) {
	if err := db.AutoMigrate(&models.StoredValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate stored_values: %w", err)
	}
	return &DBStorage{DB: db}, nil
}

func (s *DBStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var row models.StoredValue
	err := s.DB.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return row.Value, true, nil
}

func (s *DBStorage) Set(ctx context.Context, key, value string) error {
	row := models.StoredValue{Key: key, Value: value}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *DBStorage) Delete(ctx context.Context, key string) error {
	if err := s.DB.WithContext(ctx).Where("key = ?", key).Delete(&models.StoredValue{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
