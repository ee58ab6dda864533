package storage

import (
	"time"

	"gorm.io/datatypes"
)

// CredentialRecord holds the single bearer token under its well-known name.
type CredentialRecord struct {
	Name      string    `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CredentialRecord) TableName() string { return "credentials" }

// SubmissionRecord is one journaled certificate submission outcome.
type SubmissionRecord struct {
	ID          uint      `gorm:"primaryKey"`
	SubmittedAt time.Time `gorm:"not null;index"`
	StudentName string
	RollNumber  string
	Status      string `gorm:"not null"`
	Message     string
	TxHash      string
	Fields      datatypes.JSON
}

func (SubmissionRecord) TableName() string { return "submissions" }
