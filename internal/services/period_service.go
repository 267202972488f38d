package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
)

var (
	ErrNoCollectingPeriod = errors.New("no collecting period exists")
	ErrRevertNotPossible  = errors.New("revert requires both a confirmed and a collecting period")
	ErrPeriodNotFound     = errors.New("period not found")
	ErrInvalidPeriodRange = errors.New("start date and end date must be valid dates in order")
	ErrCollectingExists   = errors.New("a collecting period already exists")
)

// PeriodService owns the period lifecycle state machine. The business
// process is strictly sequential: one open collection window, one
// published schedule, and a one-step undo through the archive, so
// transitions stay minimal rather than configurable.
type PeriodService struct {
	periodRepo repository.PeriodRepository
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo repository.PeriodRepository) *PeriodService {
	return &PeriodService{
		periodRepo: periodRepo,
	}
}

// CurrentPeriods holds the (possibly absent) collecting and confirmed
// periods. Both are queried fresh from storage rather than cached.
type CurrentPeriods struct {
	Collecting *models.ShiftPeriod
	Confirmed  *models.ShiftPeriod
}

// Current returns the collecting and confirmed periods.
func (s *PeriodService) Current() (*CurrentPeriods, error) {
	collecting, err := s.findByStatus(models.PeriodStatusCollecting)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.findByStatus(models.PeriodStatusConfirmed)
	if err != nil {
		return nil, err
	}

	return &CurrentPeriods{Collecting: collecting, Confirmed: confirmed}, nil
}

// List returns all periods, newest start date first.
func (s *PeriodService) List() ([]models.ShiftPeriod, error) {
	periods, err := s.periodRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// Get returns a period by ID.
func (s *PeriodService) Get(id uint64) (*models.ShiftPeriod, error) {
	period, err := s.periodRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("failed to find period: %w", err)
	}
	return period, nil
}

// CreateInitialInput holds the date range for the first collecting period.
type CreateInitialInput struct {
	StartDate string
	EndDate   string
}

// CreateInitial creates the first collecting period. It refuses to run
// while a collecting period exists, keeping the at-most-one invariant.
func (s *PeriodService) CreateInitial(input CreateInitialInput) (*models.ShiftPeriod, error) {
	start, err := time.Parse(constants.DateLayout, input.StartDate)
	if err != nil {
		return nil, ErrInvalidPeriodRange
	}
	end, err := time.Parse(constants.DateLayout, input.EndDate)
	if err != nil {
		return nil, ErrInvalidPeriodRange
	}
	if end.Before(start) {
		return nil, ErrInvalidPeriodRange
	}

	existing, err := s.findByStatus(models.PeriodStatusCollecting)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCollectingExists
	}

	period := &models.ShiftPeriod{
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.PeriodStatusCollecting,
		DisplayName: displayName(start, end),
	}

	if err := s.periodRepo.Create(period); err != nil {
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	return period, nil
}

// Publish finalizes the collecting period: the previously confirmed
// period (when present) is archived, the collecting period becomes
// confirmed, and the next collecting period is created for the month
// that follows. All writes happen in one transaction; if the
// precondition fails nothing is written.
func (s *PeriodService) Publish() (*CurrentPeriods, error) {
	collecting, err := s.findByStatus(models.PeriodStatusCollecting)
	if err != nil {
		return nil, err
	}
	if collecting == nil {
		return nil, ErrNoCollectingPeriod
	}

	confirmed, err := s.findByStatus(models.PeriodStatusConfirmed)
	if err != nil {
		return nil, err
	}

	next, err := nextPeriod(collecting)
	if err != nil {
		return nil, err
	}

	var archiveID *uint64
	if confirmed != nil {
		archiveID = &confirmed.ID
	}

	if err := s.periodRepo.Publish(archiveID, collecting.ID, next); err != nil {
		return nil, fmt.Errorf("failed to publish period: %w", err)
	}

	return s.Current()
}

// Revert undoes the last publish: the collecting period created by it
// is deleted, the confirmed period goes back to collecting, and the
// most recently started archived period (when one exists) is promoted
// to confirmed. Shift assignments are never touched, so submissions
// made before the publish survive attached to the again-collecting
// period.
func (s *PeriodService) Revert() (*CurrentPeriods, error) {
	collecting, err := s.findByStatus(models.PeriodStatusCollecting)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.findByStatus(models.PeriodStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if collecting == nil || confirmed == nil {
		return nil, ErrRevertNotPossible
	}

	var promoteID *uint64
	archived, err := s.periodRepo.FindLatestArchived()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find archived period: %w", err)
	}
	if archived != nil {
		promoteID = &archived.ID
	}

	if err := s.periodRepo.Revert(collecting.ID, confirmed.ID, promoteID); err != nil {
		return nil, fmt.Errorf("failed to revert period: %w", err)
	}

	return s.Current()
}

func (s *PeriodService) findByStatus(status models.PeriodStatus) (*models.ShiftPeriod, error) {
	period, err := s.periodRepo.FindByStatus(status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find %s period: %w", status, err)
	}
	return period, nil
}

// nextPeriod derives the collection window that follows a period: it
// starts one month after the period's start and ends on the 15th of the
// month after that.
func nextPeriod(current *models.ShiftPeriod) (*models.ShiftPeriod, error) {
	start, err := time.Parse(constants.DateLayout, current.StartDate)
	if err != nil {
		return nil, fmt.Errorf("period %d has invalid start date %q", current.ID, current.StartDate)
	}

	nextStart := start.AddDate(0, 1, 0)
	nextEnd := time.Date(nextStart.Year(), nextStart.Month()+1, 15, 0, 0, 0, 0, time.UTC)

	return &models.ShiftPeriod{
		StartDate:   nextStart.Format(constants.DateLayout),
		EndDate:     nextEnd.Format(constants.DateLayout),
		Status:      models.PeriodStatusCollecting,
		DisplayName: displayName(nextStart, nextEnd),
	}, nil
}

func displayName(start, end time.Time) string {
	return fmt.Sprintf("%d年%d月%d日〜%d年%d月%d日",
		start.Year(), start.Month(), start.Day(),
		end.Year(), end.Month(), end.Day(),
	)
}
