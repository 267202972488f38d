package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// GormShiftRepository is a GORM implementation of ShiftRepository
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new ShiftRepository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &GormShiftRepository{db: db}
}

// ListByPeriod retrieves all assignments of a period ordered by date
func (r *GormShiftRepository) ListByPeriod(periodID uint64) ([]models.ShiftAssignment, error) {
	var assignments []models.ShiftAssignment
	err := r.db.
		Where("period_id = ?", periodID).
		Order("date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListByPeriodAndStaff retrieves one staff member's assignments in a period
func (r *GormShiftRepository) ListByPeriodAndStaff(periodID uint64, staffName string) ([]models.ShiftAssignment, error) {
	var assignments []models.ShiftAssignment
	err := r.db.
		Where("period_id = ? AND staff_name = ?", periodID, staffName).
		Order("date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// ReplaceForStaff deletes the staff member's existing assignments in
// the period and inserts the replacements within one transaction, so a
// concurrent reader never observes a partial submission.
func (r *GormShiftRepository) ReplaceForStaff(periodID uint64, staffName string, assignments []models.ShiftAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("period_id = ? AND staff_name = ?", periodID, staffName).
			Delete(&models.ShiftAssignment{}).Error
		if err != nil {
			return fmt.Errorf("failed to delete existing assignments: %w", err)
		}

		if len(assignments) == 0 {
			return nil
		}

		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("failed to insert assignments: %w", err)
		}

		return nil
	})
}

// DeleteByStaff removes every assignment of a staff member in a period
func (r *GormShiftRepository) DeleteByStaff(periodID uint64, staffName string) (int64, error) {
	result := r.db.
		Where("period_id = ? AND staff_name = ?", periodID, staffName).
		Delete(&models.ShiftAssignment{})
	return result.RowsAffected, result.Error
}

// DeleteByDate removes every assignment on a date in a period
func (r *GormShiftRepository) DeleteByDate(periodID uint64, date string) (int64, error) {
	result := r.db.
		Where("period_id = ? AND date = ?", periodID, date).
		Delete(&models.ShiftAssignment{})
	return result.RowsAffected, result.Error
}

// DeleteCell removes a single (staff, date) assignment in a period
func (r *GormShiftRepository) DeleteCell(periodID uint64, staffName, date string) (int64, error) {
	result := r.db.
		Where("period_id = ? AND staff_name = ? AND date = ?", periodID, staffName, date).
		Delete(&models.ShiftAssignment{})
	return result.RowsAffected, result.Error
}
