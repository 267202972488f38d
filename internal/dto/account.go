package dto

import (
	"time"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// AccountDTO represents an account in API responses. The PIN hash never
// leaves the model layer.
type AccountDTO struct {
	ID         uint64               `json:"id"`
	Username   string               `json:"username"`
	Role       models.AccountRole   `json:"role"`
	Status     models.AccountStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	ApprovedAt *time.Time           `json:"approved_at,omitempty"`
}

// AccountListResponse splits accounts the way the manager screen uses
// them: pending registrations and approved staff.
type AccountListResponse struct {
	Pending  []AccountDTO `json:"pending"`
	Approved []AccountDTO `json:"approved"`
}

// ToAccountDTO converts an Account model to AccountDTO
func ToAccountDTO(account models.Account) AccountDTO {
	return AccountDTO{
		ID:         account.ID,
		Username:   account.Username,
		Role:       account.Role,
		Status:     account.Status,
		CreatedAt:  account.CreatedAt,
		ApprovedAt: account.ApprovedAt,
	}
}

// ToAccountListResponse splits accounts into pending and approved staff
// views. Manager accounts are omitted from both lists.
func ToAccountListResponse(accounts []models.Account) AccountListResponse {
	resp := AccountListResponse{
		Pending:  []AccountDTO{},
		Approved: []AccountDTO{},
	}

	for _, account := range accounts {
		switch {
		case account.Status == models.AccountStatusPending:
			resp.Pending = append(resp.Pending, ToAccountDTO(account))
		case account.Role == models.RoleStaff:
			resp.Approved = append(resp.Approved, ToAccountDTO(account))
		}
	}

	return resp
}
