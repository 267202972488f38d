package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/shift-scheduling-api/internal/models"
	"github.com/yukikurage/shift-scheduling-api/internal/repository"
)

func setupAccountService(t *testing.T) (*AccountService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Account{},
		&models.ShiftAssignment{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAccountService(repository.NewAccountRepository(db)), db
}

func createAccount(t *testing.T, db *gorm.DB, username string, role models.AccountRole, status models.AccountStatus) *models.Account {
	t.Helper()

	account := &models.Account{
		Username: username,
		PINHash:  "hashed",
		Role:     role,
		Status:   status,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func TestAccountService_Approve(t *testing.T) {
	service, db := setupAccountService(t)

	account := createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusPending)

	approved, err := service.Approve(account.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccountStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	// Approving twice is refused.
	_, err = service.Approve(account.ID)
	require.ErrorIs(t, err, ErrAccountNotPending)
}

func TestAccountService_Approve_NotFound(t *testing.T) {
	service, _ := setupAccountService(t)

	_, err := service.Approve(9999)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountService_Reject(t *testing.T) {
	service, db := setupAccountService(t)

	account := createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusPending)

	require.NoError(t, service.Reject(account.ID))

	var gone models.Account
	err := db.First(&gone, account.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// A rejected username can register again.
	again := createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusPending)
	require.NotZero(t, again.ID)
}

func TestAccountService_Reject_ApprovedAccount(t *testing.T) {
	service, db := setupAccountService(t)

	account := createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusApproved)

	err := service.Reject(account.ID)
	require.ErrorIs(t, err, ErrAccountNotPending)
}

func TestAccountService_Delete_CascadesShifts(t *testing.T) {
	service, db := setupAccountService(t)

	account := createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusApproved)
	other := createAccount(t, db, "bob", models.RoleStaff, models.AccountStatusApproved)

	for _, a := range []models.ShiftAssignment{
		{PeriodID: 1, StaffName: "alice", Date: "2024-04-20", ShiftType: models.ShiftB},
		{PeriodID: 2, StaffName: "alice", Date: "2024-05-20", ShiftType: models.ShiftC},
		{PeriodID: 1, StaffName: "bob", Date: "2024-04-20", ShiftType: models.ShiftL},
	} {
		require.NoError(t, db.Create(&a).Error)
	}

	require.NoError(t, service.Delete(account.ID))

	var gone models.Account
	err := db.First(&gone, account.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Alice's shifts across all periods are gone; Bob's are untouched.
	var count int64
	db.Model(&models.ShiftAssignment{}).Where("staff_name = ?", "alice").Count(&count)
	require.EqualValues(t, 0, count)
	db.Model(&models.ShiftAssignment{}).Where("staff_name = ?", "bob").Count(&count)
	require.EqualValues(t, 1, count)

	var kept models.Account
	require.NoError(t, db.First(&kept, other.ID).Error)
}

func TestAccountService_ListApprovedStaff(t *testing.T) {
	service, db := setupAccountService(t)

	createAccount(t, db, "carol", models.RoleStaff, models.AccountStatusApproved)
	createAccount(t, db, "alice", models.RoleStaff, models.AccountStatusApproved)
	createAccount(t, db, "bob", models.RoleStaff, models.AccountStatusPending)
	createAccount(t, db, "boss", models.RoleManager, models.AccountStatusApproved)

	staff, err := service.ListApprovedStaff()
	require.NoError(t, err)
	require.Len(t, staff, 2)
	require.Equal(t, "alice", staff[0].Username)
	require.Equal(t, "carol", staff[1].Username)
}
