package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidPINLength   = errors.New("PIN must be exactly 4 characters")
	ErrPINMismatch        = errors.New("PIN confirmation does not match")
	ErrInvalidCredentials = errors.New("invalid username or PIN")
	ErrWrongCurrentPIN    = errors.New("current PIN is incorrect")
	ErrAccountNotFound    = errors.New("account not found")
	ErrFailedToHashPIN    = errors.New("failed to hash PIN")
)

// AuthService handles authentication and credential management.
type AuthService struct {
	accountRepo repository.AccountRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(accountRepo repository.AccountRepository) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Username   string
	PIN        string
	PINConfirm string
	Role       models.AccountRole
}

// Register creates an account. Staff accounts start pending and must be
// approved by a manager before they can log in; manager accounts are
// approved immediately.
func (s *AuthService) Register(input RegisterInput) (*models.Account, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.PIN) != constants.PINLength {
		return nil, ErrInvalidPINLength
	}
	if input.PIN != input.PINConfirm {
		return nil, ErrPINMismatch
	}

	if _, err := s.accountRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPIN
	}

	role := input.Role
	if role == "" {
		role = models.RoleStaff
	}

	account := &models.Account{
		Username: username,
		PINHash:  string(hash),
		Role:     role,
		Status:   models.AccountStatusPending,
	}
	if role == models.RoleManager {
		now := time.Now()
		account.Status = models.AccountStatusApproved
		account.ApprovedAt = &now
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Authenticate verifies a username/PIN pair. Only approved accounts may
// log in, and the master override key is refused outright so that no
// account can be entered with the shared secret. All failure causes
// collapse into ErrInvalidCredentials to avoid leaking which accounts
// exist.
func (s *AuthService) Authenticate(username, pin string) (*models.Account, error) {
	if pin == constants.MasterOverrideKey {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(pin)) != nil {
		return nil, ErrInvalidCredentials
	}

	if account.Status != models.AccountStatusApproved {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (s *AuthService) GetAccount(id uint64) (*models.Account, error) {
	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return account, nil
}

// ChangePIN updates an account's credential. The current PIN must match
// the stored one, or equal the master override key.
func (s *AuthService) ChangePIN(accountID uint64, currentPIN, newPIN string) error {
	if len(newPIN) != constants.PINLength {
		return ErrInvalidPINLength
	}

	account, err := s.GetAccount(accountID)
	if err != nil {
		return err
	}

	if currentPIN != constants.MasterOverrideKey {
		if bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(currentPIN)) != nil {
			return ErrWrongCurrentPIN
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPIN
	}

	account.PINHash = string(hash)
	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// ResetPIN unconditionally sets an account's credential to the fixed
// reset value. Callers gate this behind the manager role.
func (s *AuthService) ResetPIN(accountID uint64) error {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(constants.ResetPIN), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPIN
	}

	account.PINHash = string(hash)
	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}
