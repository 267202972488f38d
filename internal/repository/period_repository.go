package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// GormPeriodRepository is a GORM implementation of PeriodRepository
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewPeriodRepository creates a new PeriodRepository
func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &GormPeriodRepository{db: db}
}

// Create creates a new period
func (r *GormPeriodRepository) Create(period *models.ShiftPeriod) error {
	return r.db.Create(period).Error
}

// FindByID finds a period by ID
func (r *GormPeriodRepository) FindByID(id uint64) (*models.ShiftPeriod, error) {
	var period models.ShiftPeriod
	if err := r.db.First(&period, id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByStatus returns the period with the given status
func (r *GormPeriodRepository) FindByStatus(status models.PeriodStatus) (*models.ShiftPeriod, error) {
	var period models.ShiftPeriod
	if err := r.db.Where("status = ?", status).First(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// FindLatestArchived returns the archived period with the most recent start date
func (r *GormPeriodRepository) FindLatestArchived() (*models.ShiftPeriod, error) {
	var period models.ShiftPeriod
	err := r.db.
		Where("status = ?", models.PeriodStatusArchived).
		Order("start_date DESC").
		First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// List retrieves all periods ordered by start date descending
func (r *GormPeriodRepository) List() ([]models.ShiftPeriod, error) {
	var periods []models.ShiftPeriod
	if err := r.db.Order("start_date DESC").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// Publish performs the archive/confirm/create sequence atomically.
func (r *GormPeriodRepository) Publish(archiveID *uint64, confirmID uint64, next *models.ShiftPeriod) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if archiveID != nil {
			if err := r.setStatus(tx, *archiveID, models.PeriodStatusArchived); err != nil {
				return fmt.Errorf("failed to archive period %d: %w", *archiveID, err)
			}
		}

		if err := r.setStatus(tx, confirmID, models.PeriodStatusConfirmed); err != nil {
			return fmt.Errorf("failed to confirm period %d: %w", confirmID, err)
		}

		if err := tx.Create(next).Error; err != nil {
			return fmt.Errorf("failed to create next period: %w", err)
		}

		return nil
	})
}

// Revert performs the delete/demote/promote sequence atomically.
func (r *GormPeriodRepository) Revert(deleteID, demoteID uint64, promoteID *uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ShiftPeriod{}, deleteID).Error; err != nil {
			return fmt.Errorf("failed to delete period %d: %w", deleteID, err)
		}

		if err := r.setStatus(tx, demoteID, models.PeriodStatusCollecting); err != nil {
			return fmt.Errorf("failed to demote period %d: %w", demoteID, err)
		}

		if promoteID != nil {
			if err := r.setStatus(tx, *promoteID, models.PeriodStatusConfirmed); err != nil {
				return fmt.Errorf("failed to promote period %d: %w", *promoteID, err)
			}
		}

		return nil
	})
}

func (r *GormPeriodRepository) setStatus(tx *gorm.DB, id uint64, status models.PeriodStatus) error {
	return tx.Model(&models.ShiftPeriod{}).
		Where("id = ?", id).
		Update("status", status).Error
}
