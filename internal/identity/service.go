// Package identity provisions system user records for externally-sourced
// exchange accounts.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Namespace for platform account UUIDs. DO NOT CHANGE: derived IDs must stay
// stable across deployments.
var accountNamespace = uuid.MustParse("951e7376-a07e-52ad-9477-030913972236")

const (
	systemPasswordHash = "SYSTEM_ACCOUNT_LOCKED"
	systemUserData     = `{"type": "jit_provisioned_system_account"}`
)

// SystemUser is the persisted record for a provisioned system account.
type SystemUser struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email          string    `gorm:"uniqueIndex"`
	HashedPassword string    `gorm:"column:hashed_password"`
	UserData       string    `gorm:"type:text"`
	CreatedAt      time.Time
}

// TableName maps SystemUser onto the shared users table.
func (SystemUser) TableName() string { return "users" }

// AccountUUID deterministically converts a string account ID
// (e.g. "deribit-148510") into a UUIDv5 for database persistence.
func AccountUUID(accountID string) uuid.UUID {
	return uuid.NewSHA1(accountNamespace, []byte(accountID))
}

// Service performs just-in-time identity provisioning.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a provisioning service over the given database.
func NewService(logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		logger: logger.Named("identity"),
		db:     db,
	}
}

// Provision ensures a user record exists for the given external account ID,
// creating it if absent. The operation is keyed by the deterministic account
// UUID and is safe to call repeatedly.
func (s *Service) Provision(ctx context.Context, accountID string) error {
	userUUID := AccountUUID(accountID)

	user := SystemUser{
		ID: userUUID,
		// System accounts never log in through the frontend, so the email and
		// password hash are placeholders.
		Email:          fmt.Sprintf("%s@legacy.system", accountID),
		HashedPassword: systemPasswordHash,
		UserData:       systemUserData,
	}

	s.logger.Info("Provisioning identity",
		zap.String("account_id", accountID),
		zap.String("uuid", userUUID.String()))

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		s.logger.Error("Failed to provision identity",
			zap.String("account_id", accountID), zap.Error(err))
		return fmt.Errorf("failed to provision identity for %q: %w", accountID, err)
	}

	s.logger.Info("Identity provisioned", zap.String("account_id", accountID))
	return nil
}
