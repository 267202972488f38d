package models

import "time"

type AccountRole string

const (
	RoleStaff   AccountRole = "staff"
	RoleManager AccountRole = "manager"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
)

// Account is a staff or manager login. Staff accounts start pending and
// must be approved by a manager before they can authenticate.
type Account struct {
	ID         uint64        `gorm:"primarykey" json:"id"`
	Username   string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PINHash    string        `gorm:"type:varchar(255);not null" json:"-"`
	Role       AccountRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status     AccountStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ApprovedAt *time.Time    `json:"approved_at"`
}
