package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"veritas-client-go/internal/platform/storage"
)

type sqliteStore struct {
	db   *gorm.DB
	name string
}

// NewSQLite builds a SQLite-backed credential store. This is the default
// driver: the token survives client restarts.
func NewSQLite(db *gorm.DB, cfg Config) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite store requires database handle")
	}
	name := cfg.Namespace
	if name == "" {
		name = DefaultNamespace
	}
	return &sqliteStore{db: db, name: name}, nil
}

func (s *sqliteStore) Save(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", s.name).Delete(&storage.CredentialRecord{}).Error; err != nil {
			return err
		}
		record := &storage.CredentialRecord{
			Name:      s.name,
			Token:     token,
			UpdatedAt: time.Now(),
		}
		return tx.Create(record).Error
	})
}

func (s *sqliteStore) Load(ctx context.Context) (string, bool, error) {
	var record storage.CredentialRecord
	err := s.db.WithContext(ctx).Where("name = ?", s.name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Token, true, nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("name = ?", s.name).Delete(&storage.CredentialRecord{}).Error
}

func (s *sqliteStore) Stats(ctx context.Context) (map[string]any, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&storage.CredentialRecord{}).
		Where("name = ?", s.name).Count(&total).Error; err != nil {
		return nil, err
	}
	return map[string]any{
		"type":    "sqlite",
		"name":    s.name,
		"present": total > 0,
	}, nil
}

func (s *sqliteStore) Close(context.Context) error {
	return nil
}
