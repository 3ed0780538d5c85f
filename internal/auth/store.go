package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline-events/siteadmin/internal/models"
	"gorm.io/gorm"
)

// CredentialStore persists database-backed admin accounts.
type CredentialStore interface {
	// FindByUsername returns nil, nil when no account has the username.
	FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error)
	// Create returns ErrAccountExists when the username is taken.
	Create(ctx context.Context, username, passwordHash string) (*models.AdminAccount, error)
	// Update applies column updates to the account with id.
	Update(ctx context.Context, id uint64, fields map[string]any) error
}

// GormCredentialStore implements CredentialStore on the admin_accounts table.
type GormCredentialStore struct {
	db *gorm.DB
}

// NewGormCredentialStore constructs a GormCredentialStore.
func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

// FindByUsername loads an account by exact username.
func (s *GormCredentialStore) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	var account models.AdminAccount
	errFind := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find account: %v", ErrStoreUnavailable, errFind)
	}
	return &account, nil
}

// Create inserts a new account.
func (s *GormCredentialStore) Create(ctx context.Context, username, passwordHash string) (*models.AdminAccount, error) {
	account := models.AdminAccount{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if errCreate := s.db.WithContext(ctx).Create(&account).Error; errCreate != nil {
		if isDuplicateKey(errCreate) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("%w: create account: %v", ErrStoreUnavailable, errCreate)
	}
	return &account, nil
}

// Update applies fields to the account row. Nil values clear the column.
func (s *GormCredentialStore) Update(ctx context.Context, id uint64, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.AdminAccount{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("%w: update account: %v", ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
