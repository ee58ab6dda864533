package storage

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	platformerrors "veritas-client-go/internal/platform/errors"
)

// Open opens the local SQLite database and migrates the client tables.
func Open(dsn string) (*gorm.DB, error) {
	if dir := filepath.Dir(dsn); dir != "" && dir != "." && !isMemoryDSN(dsn) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindStorage, "database.mkdir",
				"failed to create data directory", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "database.open",
			"failed to open database", err)
	}

	if err := db.AutoMigrate(&CredentialRecord{}, &SubmissionRecord{}); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindStorage, "database.migrate",
			"failed to migrate database", err)
	}
	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || len(dsn) >= 5 && dsn[:5] == "file:"
}
