package model

import (
	"time"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// User represents the database model for users. Balance and currency are
// nullable: a user created externally starts with neither.
type User struct {
	ID        string              `gorm:"primaryKey;size:64"`
	Balance   decimal.NullDecimal `gorm:"type:numeric(20,2)"`
	Currency  *string             `gorm:"size:8"`
	CreatedAt time.Time           `gorm:"not null"`
	UpdatedAt time.Time           `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// ToEntity converts the model to a domain entity
func (m *User) ToEntity() *entity.User {
	user := &entity.User{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Balance.Valid {
		b := m.Balance.Decimal
		user.Balance = &b
	}
	if m.Currency != nil {
		user.Currency = *m.Currency
	}
	return user
}

// UserFromEntity converts a domain entity to the database model
func UserFromEntity(user *entity.User) User {
	m := User{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Balance != nil {
		m.Balance = decimal.NewNullDecimal(*user.Balance)
	}
	if user.Currency != "" {
		c := user.Currency
		m.Currency = &c
	}
	return m
}
