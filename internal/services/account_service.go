package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
)

var ErrAccountNotPending = errors.New("account is not pending approval")

// AccountService handles manager-side account administration.
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// List returns all accounts, newest first.
func (s *AccountService) List() ([]models.Account, error) {
	accounts, err := s.accountRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ListApprovedStaff returns approved staff accounts sorted by username.
func (s *AccountService) ListApprovedStaff() ([]models.Account, error) {
	accounts, err := s.accountRepo.ListApprovedStaff()
	if err != nil {
		return nil, fmt.Errorf("failed to list approved staff: %w", err)
	}
	return accounts, nil
}

// Approve moves a pending account to approved and stamps the approval time.
func (s *AccountService) Approve(accountID uint64) (*models.Account, error) {
	account, err := s.find(accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != models.AccountStatusPending {
		return nil, ErrAccountNotPending
	}

	now := time.Now()
	account.Status = models.AccountStatusApproved
	account.ApprovedAt = &now

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to approve account: %w", err)
	}

	return account, nil
}

// Reject removes a pending account. Rejected registrations leave no row
// behind, so the username becomes available again.
func (s *AccountService) Reject(accountID uint64) error {
	account, err := s.find(accountID)
	if err != nil {
		return err
	}
	if account.Status != models.AccountStatusPending {
		return ErrAccountNotPending
	}

	if err := s.accountRepo.Delete(account.ID); err != nil {
		return fmt.Errorf("failed to reject account: %w", err)
	}

	return nil
}

// Delete removes an account together with every shift assignment that
// carries its username, in one transaction.
func (s *AccountService) Delete(accountID uint64) error {
	account, err := s.find(accountID)
	if err != nil {
		return err
	}

	if err := s.accountRepo.DeleteWithAssignments(account.ID, account.Username); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}

func (s *AccountService) find(accountID uint64) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}
