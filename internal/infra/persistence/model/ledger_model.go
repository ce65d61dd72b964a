package model

import (
	"time"
)

// LedgerEntryModel is the GORM-specific struct for the 'ledger_entries' table.
// Signed amounts; the wallet balance is the running sum plus adjustments.
type LedgerEntryModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID   uint64 `gorm:"not null;index"`
	Amount      int    `gorm:"not null"`
	Type        string `gorm:"type:varchar(20);not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
