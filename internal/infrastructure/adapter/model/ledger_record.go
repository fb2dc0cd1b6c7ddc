package model

import (
	"time"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LedgerRecord represents the database model for the append-only ledger.
// The idempotency key is the primary key; the store rejects a second insert
// for the same key, which is the guard the transactor's conflict resolution
// relies on.
type LedgerRecord struct {
	IdempotencyKey string          `gorm:"primaryKey;size:255"`
	UserID         string          `gorm:"not null;index;size:64"`
	Amount         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Type           string          `gorm:"not null;size:16"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName specifies the table name for LedgerRecord
func (LedgerRecord) TableName() string {
	return "ledger_records"
}

// ToEntity converts the model to a domain entity
func (m *LedgerRecord) ToEntity() *entity.LedgerRecord {
	return &entity.LedgerRecord{
		IdempotencyKey: m.IdempotencyKey,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Type:           entity.TransactionType(m.Type),
		CreatedAt:      m.CreatedAt,
	}
}

// LedgerRecordFromEntity converts a domain entity to the database model
func LedgerRecordFromEntity(record *entity.LedgerRecord) LedgerRecord {
	return LedgerRecord{
		IdempotencyKey: record.IdempotencyKey,
		UserID:         record.UserID,
		Amount:         record.Amount,
		Type:           string(record.Type),
		CreatedAt:      record.CreatedAt,
	}
}
