package models

import "time"

type PeriodStatus string

const (
	PeriodStatusCollecting PeriodStatus = "collecting"
	PeriodStatusConfirmed  PeriodStatus = "confirmed"
	PeriodStatusArchived   PeriodStatus = "archived"
)

// ShiftPeriod is a bounded date range for which shift requests are
// collected or have been published. Across all rows at most one period
// is collecting and at most one is confirmed; the transition protocol
// in the period service enforces this, not the schema.
//
// Dates are stored as YYYY-MM-DD strings so that grid keys and the wire
// format stay identical.
type ShiftPeriod struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	StartDate   string       `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate     string       `gorm:"type:varchar(10);not null" json:"end_date"`
	Status      PeriodStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	DisplayName string       `gorm:"type:varchar(100)" json:"display_name"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
