package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
)

func setupShiftService(t *testing.T) (*ShiftService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Account{},
		&models.ShiftPeriod{},
		&models.ShiftAssignment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	service := NewShiftService(
		repository.NewShiftRepository(db),
		repository.NewPeriodRepository(db),
		repository.NewAccountRepository(db),
	)
	return service, db
}

func TestShiftService_Submit(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	err := service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
		{Date: "2024-04-17", ShiftType: ""},
		{Date: "2024-04-18", ShiftType: models.ShiftCL},
	})
	require.NoError(t, err)

	var stored []models.ShiftAssignment
	require.NoError(t, db.Where("staff_name = ?", "alice").Order("date ASC").Find(&stored).Error)
	require.Len(t, stored, 2)
	require.Equal(t, "2024-04-16", stored[0].Date)
	require.Equal(t, models.ShiftB, stored[0].ShiftType)
	require.Equal(t, "2024-04-18", stored[1].Date)
}

func TestShiftService_Submit_ReplacesPrevious(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	err := service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
		{Date: "2024-04-17", ShiftType: models.ShiftC},
	})
	require.NoError(t, err)

	// A second submission replaces the first wholesale.
	err = service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-20", ShiftType: models.ShiftN},
	})
	require.NoError(t, err)

	var stored []models.ShiftAssignment
	require.NoError(t, db.Where("staff_name = ?", "alice").Find(&stored).Error)
	require.Len(t, stored, 1)
	require.Equal(t, "2024-04-20", stored[0].Date)
	require.Equal(t, models.ShiftN, stored[0].ShiftType)
}

func TestShiftService_Submit_Validation(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	err := service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-05-16", ShiftType: models.ShiftB},
	})
	require.ErrorIs(t, err, ErrDateOutOfRange)

	err = service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: "X"},
	})
	require.ErrorIs(t, err, ErrUnknownShiftType)

	err = service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: ""},
	})
	require.ErrorIs(t, err, ErrNoShiftEntries)

	// Failed submissions must not write anything.
	var count int64
	db.Model(&models.ShiftAssignment{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestShiftService_Submit_NotCollecting(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusConfirmed)

	err := service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
	})
	require.ErrorIs(t, err, ErrPeriodNotCollecting)
}

func TestShiftService_Submit_PeriodNotFound(t *testing.T) {
	service, _ := setupShiftService(t)

	err := service.Submit(9999, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
	})
	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestShiftService_Grid(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-04-18", models.PeriodStatusCollecting)

	require.NoError(t, service.Submit(period.ID, "bob", []ShiftEntry{
		{Date: "2024-04-17", ShiftType: models.ShiftC},
	}))
	require.NoError(t, service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
	}))

	got, grid, err := service.Grid(period.ID, "")
	require.NoError(t, err)
	require.Equal(t, period.ID, got.ID)
	require.Equal(t, []string{"2024-04-16", "2024-04-17", "2024-04-18"}, grid.Dates)
	require.Equal(t, []string{"alice", "bob"}, grid.Staff)
	require.Equal(t, "B", grid.Cells["alice"]["2024-04-16"])
	require.Equal(t, "C", grid.Cells["bob"]["2024-04-17"])

	// Staff filter restricts the grid to one row.
	_, grid, err = service.Grid(period.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, grid.Staff)
}

func TestShiftService_SubmissionStats(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusApproved)
	createAccount(t, db, "bob", models.RoleStaff, models.AccountStatusApproved)
	createAccount(t, db, "pending", models.RoleStaff, models.AccountStatusPending)

	require.NoError(t, service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
	}))

	stats, err := service.SubmissionStats(period.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, stats.Submitted)
	require.Equal(t, []string{"bob"}, stats.NotSubmitted)
}

func TestShiftService_Delete(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	require.NoError(t, service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftB},
		{Date: "2024-04-17", ShiftType: models.ShiftC},
	}))
	require.NoError(t, service.Submit(period.ID, "bob", []ShiftEntry{
		{Date: "2024-04-16", ShiftType: models.ShiftL},
	}))

	// One cell.
	deleted, err := service.Delete(period.ID, DeleteInput{StaffName: "alice", Date: "2024-04-16"})
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	// Whole date column.
	deleted, err = service.Delete(period.ID, DeleteInput{Date: "2024-04-16"})
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	// Whole staff row.
	deleted, err = service.Delete(period.ID, DeleteInput{StaffName: "alice"})
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	var count int64
	db.Model(&models.ShiftAssignment{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestShiftService_Delete_Errors(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	_, err := service.Delete(period.ID, DeleteInput{})
	require.ErrorIs(t, err, ErrDeleteFilterMissing)

	_, err = service.Delete(period.ID, DeleteInput{StaffName: "nobody"})
	require.ErrorIs(t, err, ErrShiftNotFound)

	_, err = service.Delete(9999, DeleteInput{StaffName: "alice"})
	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestShiftService_MySubmission(t *testing.T) {
	service, db := setupShiftService(t)

	period := createPeriod(t, db, "2024-04-16", "2024-05-15", models.PeriodStatusCollecting)

	require.NoError(t, service.Submit(period.ID, "alice", []ShiftEntry{
		{Date: "2024-04-17", ShiftType: models.ShiftC},
		{Date: "2024-04-16", ShiftType: models.ShiftB},
	}))

	assignments, err := service.MySubmission(period.ID, "alice")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.Equal(t, "2024-04-16", assignments[0].Date)

	assignments, err = service.MySubmission(period.ID, "bob")
	require.NoError(t, err)
	require.Empty(t, assignments)
}
