package repositories

import (
	"github.com/ripplr-app/backend/internal/models"
	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	CreateAccount(account *models.Account) error
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccountByProfileID(profileID string) (*models.Account, error)
	DeleteAccountByProfileID(profileID string) error
}

// PostgresAccountRepository implements AccountRepository for PostgreSQL
type PostgresAccountRepository struct {
	db *gorm.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository
func NewPostgresAccountRepository(db *gorm.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// CreateAccount creates a new account in PostgreSQL
func (r *PostgresAccountRepository) CreateAccount(account *models.Account) error {
	return r.db.Create(account).Error
}

// GetAccountByEmail retrieves an account by email
func (r *PostgresAccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByProfileID retrieves the account owning a profile document
func (r *PostgresAccountRepository) GetAccountByProfileID(profileID string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("profile_id = ?", profileID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccountByProfileID deletes the account owning a profile document
func (r *PostgresAccountRepository) DeleteAccountByProfileID(profileID string) error {
	return r.db.Where("profile_id = ?", profileID).Delete(&models.Account{}).Error
}
