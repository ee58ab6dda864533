// Package journal keeps a local audit trail of certificate submissions
// so an institution can review what it sent and what came back.
package journal

import (
	"context"
	"encoding/json"

	evbus "github.com/asaskevich/EventBus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"veritas-client-go/internal/domain/eventbus"
	"veritas-client-go/internal/platform/storage"
)

// Logger provides the minimal logging contract required by the journal.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Journal records settled submissions in the local database.
type Journal struct {
	db     *gorm.DB
	logger Logger
}

// New wires a Journal over the shared client database.
func New(db *gorm.DB, logger Logger) *Journal {
	return &Journal{db: db, logger: logger}
}

// Attach subscribes the journal to settled-submission events.
func (j *Journal) Attach(bus evbus.Bus) error {
	return bus.Subscribe(eventbus.TopicSubmissionSettled, func(e eventbus.SubmissionEvent) {
		if err := j.record(context.Background(), e); err != nil {
			j.logger.Warn("[journal] failed to record submission: %v", err)
		}
	})
}

func (j *Journal) record(ctx context.Context, e eventbus.SubmissionEvent) error {
	status := "failure"
	if e.Success {
		status = "success"
	}
	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return err
	}

	record := &storage.SubmissionRecord{
		SubmittedAt: e.At,
		StudentName: e.Fields["student_name"],
		RollNumber:  e.Fields["roll_number"],
		Status:      status,
		Message:     e.Message,
		TxHash:      e.TxHash,
		Fields:      datatypes.JSON(fields),
	}
	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}
	j.logger.Debug("[journal] recorded %s submission for %s", status, record.StudentName)
	return nil
}

// Recent returns the latest journaled submissions, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]storage.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var records []storage.SubmissionRecord
	err := j.db.WithContext(ctx).
		Order("submitted_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
