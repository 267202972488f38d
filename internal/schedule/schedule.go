// Package schedule holds the pure derived-view computations over shift
// data: the per-staff/per-date grid used by tables and exports, and the
// submitted/not-submitted split shown to managers.
package schedule

import (
	"sort"
	"time"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
	"github.com/yukikurage/shift-scheduling-api/internal/models"
)

// Grid is a staff-by-date pivot of a period's assignments. Dates covers
// every calendar day of the period inclusive; Staff is sorted; missing
// cells are empty strings.
type Grid struct {
	Dates []string                     `json:"dates"`
	Staff []string                     `json:"staff"`
	Cells map[string]map[string]string `json:"cells"`
}

// SubmissionStatus splits the approved staff of a period into those who
// have submitted at least one shift and those who have not. Both lists
// are sorted for stable output.
type SubmissionStatus struct {
	Submitted    []string `json:"submitted"`
	NotSubmitted []string `json:"not_submitted"`
}

// DateRange enumerates every date from start to end inclusive in
// YYYY-MM-DD format. A start after the end yields an empty range, not
// an error. Unparseable bounds also yield an empty range; dates are
// validated before they are stored.
func DateRange(start, end string) []string {
	from, err := time.Parse(constants.DateLayout, start)
	if err != nil {
		return nil
	}
	to, err := time.Parse(constants.DateLayout, end)
	if err != nil {
		return nil
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constants.DateLayout))
	}
	return dates
}

// PivotGrid pivots a period's assignments into a Grid. Every staff name
// present in the assignment set gets a row, whether or not an approved
// account exists for it, and stored shift types are rendered verbatim.
func PivotGrid(period models.ShiftPeriod, assignments []models.ShiftAssignment) Grid {
	grid := Grid{
		Dates: DateRange(period.StartDate, period.EndDate),
		Staff: []string{},
		Cells: make(map[string]map[string]string),
	}

	byStaff := make(map[string]map[string]string)
	for _, a := range assignments {
		if a.PeriodID != period.ID {
			continue
		}
		if byStaff[a.StaffName] == nil {
			byStaff[a.StaffName] = make(map[string]string)
		}
		byStaff[a.StaffName][a.Date] = string(a.ShiftType)
	}

	for name := range byStaff {
		grid.Staff = append(grid.Staff, name)
	}
	sort.Strings(grid.Staff)

	for _, name := range grid.Staff {
		row := make(map[string]string, len(grid.Dates))
		for _, date := range grid.Dates {
			row[date] = byStaff[name][date]
		}
		grid.Cells[name] = row
	}

	return grid
}

// ComputeSubmissionStatus derives which approved staff have submitted
// for the period. A staff member counts as submitted when at least one
// assignment in the period carries their name.
func ComputeSubmissionStatus(periodID uint64, approvedStaff []models.Account, assignments []models.ShiftAssignment) SubmissionStatus {
	submitted := make(map[string]bool)
	for _, a := range assignments {
		if a.PeriodID == periodID {
			submitted[a.StaffName] = true
		}
	}

	status := SubmissionStatus{
		Submitted:    []string{},
		NotSubmitted: []string{},
	}

	for name := range submitted {
		status.Submitted = append(status.Submitted, name)
	}
	sort.Strings(status.Submitted)

	for _, account := range approvedStaff {
		if !submitted[account.Username] {
			status.NotSubmitted = append(status.NotSubmitted, account.Username)
		}
	}
	sort.Strings(status.NotSubmitted)

	return status
}
