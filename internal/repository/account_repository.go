package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// GormAccountRepository is a GORM implementation of AccountRepository
type GormAccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

// Create creates a new account
func (r *GormAccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(id uint64) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUsername finds an account by username
func (r *GormAccountRepository) FindByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// List retrieves all accounts ordered by creation time descending
func (r *GormAccountRepository) List() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListApprovedStaff retrieves approved staff accounts sorted by username
func (r *GormAccountRepository) ListApprovedStaff() ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.
		Where("role = ? AND status = ?", models.RoleStaff, models.AccountStatusApproved).
		Order("username ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Update persists changes to an account
func (r *GormAccountRepository) Update(account *models.Account) error {
	return r.db.Save(account).Error
}

// Delete removes an account row
func (r *GormAccountRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Account{}, id).Error
}

// DeleteWithAssignments removes an account and all shift assignments
// carrying its username as one transaction.
func (r *GormAccountRepository) DeleteWithAssignments(id uint64, staffName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_name = ?", staffName).
			Delete(&models.ShiftAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to delete shift assignments: %w", err)
		}

		return tx.Delete(&models.Account{}, id).Error
	})
}
