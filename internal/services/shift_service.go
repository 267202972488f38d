package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
	"github.com/yukikurage/shift-scheduling-api/internal/schedule"
)

var (
	ErrPeriodNotCollecting = errors.New("period is not collecting submissions")
	ErrNoShiftEntries      = errors.New("at least one shift entry is required")
	ErrDateOutOfRange      = errors.New("shift date is outside the period")
	ErrUnknownShiftType    = errors.New("unknown shift type")
	ErrShiftNotFound       = errors.New("no matching shift found")
	ErrDeleteFilterMissing = errors.New("staff or date filter is required")
)

// ShiftService handles shift submission and the derived views over it.
type ShiftService struct {
	shiftRepo   repository.ShiftRepository
	periodRepo  repository.PeriodRepository
	accountRepo repository.AccountRepository
}

// NewShiftService creates a new ShiftService.
func NewShiftService(shiftRepo repository.ShiftRepository, periodRepo repository.PeriodRepository, accountRepo repository.AccountRepository) *ShiftService {
	return &ShiftService{
		shiftRepo:   shiftRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
	}
}

// ShiftEntry is one date/type pair of a submission.
type ShiftEntry struct {
	Date      string
	ShiftType models.ShiftType
}

// Submit replaces a staff member's shifts for a collecting period with
// the given entries. Validation runs before any write: the period must
// be collecting, every date must fall inside it, and every shift type
// must belong to the known set. Entries with an empty shift type mean
// "no shift" and are dropped rather than stored.
func (s *ShiftService) Submit(periodID uint64, staffName string, entries []ShiftEntry) error {
	period, err := s.findPeriod(periodID)
	if err != nil {
		return err
	}
	if period.Status != models.PeriodStatusCollecting {
		return ErrPeriodNotCollecting
	}

	validDates := make(map[string]bool)
	for _, date := range schedule.DateRange(period.StartDate, period.EndDate) {
		validDates[date] = true
	}

	assignments := make([]models.ShiftAssignment, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.ShiftType == "" {
			continue
		}
		if !validDates[entry.Date] {
			return fmt.Errorf("%w: %s", ErrDateOutOfRange, entry.Date)
		}
		if !models.KnownShiftTypes[entry.ShiftType] {
			return fmt.Errorf("%w: %s", ErrUnknownShiftType, entry.ShiftType)
		}
		if seen[entry.Date] {
			continue
		}
		seen[entry.Date] = true

		assignments = append(assignments, models.ShiftAssignment{
			PeriodID:  periodID,
			StaffName: staffName,
			Date:      entry.Date,
			ShiftType: entry.ShiftType,
		})
	}

	if len(assignments) == 0 {
		return ErrNoShiftEntries
	}

	if err := s.shiftRepo.ReplaceForStaff(periodID, staffName, assignments); err != nil {
		return fmt.Errorf("failed to replace shifts: %w", err)
	}

	return nil
}

// Grid returns the staff-by-date pivot of a period's assignments. When
// staffName is non-empty the grid is restricted to that staff member.
func (s *ShiftService) Grid(periodID uint64, staffName string) (*models.ShiftPeriod, schedule.Grid, error) {
	period, err := s.findPeriod(periodID)
	if err != nil {
		return nil, schedule.Grid{}, err
	}

	var assignments []models.ShiftAssignment
	if staffName != "" {
		assignments, err = s.shiftRepo.ListByPeriodAndStaff(periodID, staffName)
	} else {
		assignments, err = s.shiftRepo.ListByPeriod(periodID)
	}
	if err != nil {
		return nil, schedule.Grid{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	return period, schedule.PivotGrid(*period, assignments), nil
}

// SubmissionStats reports which approved staff have and have not
// submitted for a period.
func (s *ShiftService) SubmissionStats(periodID uint64) (schedule.SubmissionStatus, error) {
	if _, err := s.findPeriod(periodID); err != nil {
		return schedule.SubmissionStatus{}, err
	}

	staff, err := s.accountRepo.ListApprovedStaff()
	if err != nil {
		return schedule.SubmissionStatus{}, fmt.Errorf("failed to list approved staff: %w", err)
	}

	assignments, err := s.shiftRepo.ListByPeriod(periodID)
	if err != nil {
		return schedule.SubmissionStatus{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	return schedule.ComputeSubmissionStatus(periodID, staff, assignments), nil
}

// DeleteInput selects the assignments to remove from a period: by
// staff, by date, or a single cell when both are set.
type DeleteInput struct {
	StaffName string
	Date      string
}

// Delete removes assignments matching the filter and reports how many
// rows were deleted. A filter matching nothing is ErrShiftNotFound.
func (s *ShiftService) Delete(periodID uint64, input DeleteInput) (int64, error) {
	if _, err := s.findPeriod(periodID); err != nil {
		return 0, err
	}

	var (
		deleted int64
		err     error
	)
	switch {
	case input.StaffName != "" && input.Date != "":
		deleted, err = s.shiftRepo.DeleteCell(periodID, input.StaffName, input.Date)
	case input.StaffName != "":
		deleted, err = s.shiftRepo.DeleteByStaff(periodID, input.StaffName)
	case input.Date != "":
		deleted, err = s.shiftRepo.DeleteByDate(periodID, input.Date)
	default:
		return 0, ErrDeleteFilterMissing
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts: %w", err)
	}
	if deleted == 0 {
		return 0, ErrShiftNotFound
	}

	return deleted, nil
}

// MySubmission returns a staff member's own assignments in a period.
func (s *ShiftService) MySubmission(periodID uint64, staffName string) ([]models.ShiftAssignment, error) {
	if _, err := s.findPeriod(periodID); err != nil {
		return nil, err
	}

	assignments, err := s.shiftRepo.ListByPeriodAndStaff(periodID, staffName)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return assignments, nil
}

func (s *ShiftService) findPeriod(periodID uint64) (*models.ShiftPeriod, error) {
	period, err := s.periodRepo.FindByID(periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("failed to find period: %w", err)
	}
	return period, nil
}
