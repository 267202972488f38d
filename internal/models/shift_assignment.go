package models

import "time"

type ShiftType string

const (
	ShiftB  ShiftType = "B"
	ShiftC  ShiftType = "C"
	ShiftL  ShiftType = "L"
	ShiftN  ShiftType = "N"
	ShiftCL ShiftType = "CL"
	ShiftBL ShiftType = "BL"
	ShiftBN ShiftType = "BN"
	ShiftCN ShiftType = "CN"
)

// KnownShiftTypes is the closed set accepted on submission. The derived
// grid views render whatever is stored verbatim.
var KnownShiftTypes = map[ShiftType]bool{
	ShiftB:  true,
	ShiftC:  true,
	ShiftL:  true,
	ShiftN:  true,
	ShiftCL: true,
	ShiftBL: true,
	ShiftBN: true,
	ShiftCN: true,
}

// ShiftAssignment is one staff member's shift on one date of a period.
// At most one row exists per (period, staff, date); submissions replace
// a staff member's rows wholesale.
type ShiftAssignment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	PeriodID  uint64    `gorm:"not null;index:idx_shifts_period_staff" json:"period_id"`
	StaffName string    `gorm:"type:varchar(50);not null;index:idx_shifts_period_staff" json:"staff_name"`
	Date      string    `gorm:"type:varchar(10);not null" json:"date"`
	ShiftType ShiftType `gorm:"type:varchar(4);not null" json:"shift_type"`
	CreatedAt time.Time `json:"created_at"`
}
