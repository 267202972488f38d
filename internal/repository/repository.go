package repository

import (
	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create creates a new account
	Create(account *models.Account) error

	// FindByID finds an account by ID
	FindByID(id uint64) (*models.Account, error)

	// FindByUsername finds an account by username
	FindByUsername(username string) (*models.Account, error)

	// List retrieves all accounts ordered by creation time
	List() ([]models.Account, error)

	// ListApprovedStaff retrieves approved staff accounts sorted by username
	ListApprovedStaff() ([]models.Account, error)

	// Update persists changes to an account
	Update(account *models.Account) error

	// Delete removes an account row without touching shift data
	Delete(id uint64) error

	// DeleteWithAssignments removes an account and every shift
	// assignment carrying its username within a single transaction
	DeleteWithAssignments(id uint64, staffName string) error
}

// PeriodRepository defines the interface for shift period data access
type PeriodRepository interface {
	// Create creates a new period
	Create(period *models.ShiftPeriod) error

	// FindByID finds a period by ID
	FindByID(id uint64) (*models.ShiftPeriod, error)

	// FindByStatus returns the period with the given status, or
	// gorm.ErrRecordNotFound when absent
	FindByStatus(status models.PeriodStatus) (*models.ShiftPeriod, error)

	// FindLatestArchived returns the archived period with the most
	// recent start date, or gorm.ErrRecordNotFound when none exist
	FindLatestArchived() (*models.ShiftPeriod, error)

	// List retrieves all periods ordered by start date descending
	List() ([]models.ShiftPeriod, error)

	// Publish archives the confirmed period (when present), confirms
	// the collecting period, and creates the next collecting period,
	// all within a single transaction
	Publish(archiveID *uint64, confirmID uint64, next *models.ShiftPeriod) error

	// Revert deletes the collecting period, demotes the confirmed
	// period back to collecting, and promotes the given archived
	// period (when present) to confirmed, within a single transaction
	Revert(deleteID, demoteID uint64, promoteID *uint64) error
}

// ShiftRepository defines the interface for shift assignment data access
type ShiftRepository interface {
	// ListByPeriod retrieves all assignments of a period ordered by date
	ListByPeriod(periodID uint64) ([]models.ShiftAssignment, error)

	// ListByPeriodAndStaff retrieves one staff member's assignments in a period
	ListByPeriodAndStaff(periodID uint64, staffName string) ([]models.ShiftAssignment, error)

	// ReplaceForStaff atomically replaces all assignments of a staff
	// member within a period
	ReplaceForStaff(periodID uint64, staffName string, assignments []models.ShiftAssignment) error

	// DeleteByStaff removes every assignment of a staff member in a
	// period and reports the number of deleted rows
	DeleteByStaff(periodID uint64, staffName string) (int64, error)

	// DeleteByDate removes every assignment on a date in a period and
	// reports the number of deleted rows
	DeleteByDate(periodID uint64, date string) (int64, error)

	// DeleteCell removes a single (staff, date) assignment in a period
	// and reports the number of deleted rows
	DeleteCell(periodID uint64, staffName, date string) (int64, error)
}
