package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Provisioner creates the keyed collections the ledger core runs against.
// Provisioning is a prerequisite, not part of the core transaction path.
type Provisioner struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewProvisioner creates a new Provisioner
func NewProvisioner(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *Provisioner {
	return &Provisioner{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// EnsureSchema creates the users and ledger_records tables with their key
// constraints if they don't already exist
func (p *Provisioner) EnsureSchema(ctx context.Context) error {
	p.logger.Info("Ensuring database schema", nil)

	if err := p.db.WithContext(ctx).AutoMigrate(&model.User{}, &model.LedgerRecord{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// SeedUsers creates the given users if they don't already exist. Seeded users
// start unfunded; their first credit establishes a balance.
func (p *Provisioner) SeedUsers(ctx context.Context, userIDs []string) error {
	for _, id := range userIDs {
		user, err := entity.NewUser(id, p.timeProvider)
		if err != nil {
			return err
		}

		userModel := model.UserFromEntity(user)
		result := p.db.WithContext(ctx).
			Where("id = ?", id).
			FirstOrCreate(&userModel)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to seed user %s: %w", id, result.Error)
		}

		if result.RowsAffected > 0 {
			p.logger.Info("Seeded user", map[string]any{"user_id": id})
		}
	}

	return nil
}
