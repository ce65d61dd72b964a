package model

import (
	"time"
)

// CertificateModel is the GORM-specific struct for the 'certificates' table.
// The unique indexes back the one-certificate-per-pickup and unique-code rules.
type CertificateModel struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	UniqueCode    string `gorm:"type:varchar(20);not null;uniqueIndex"`
	PickupID      uint64 `gorm:"not null;uniqueIndex"`
	RecipientName string `gorm:"type:varchar(255);not null"`
	CertType      string `gorm:"type:varchar(20);not null"`
	IssueDate     time.Time
	CarbonOffset  float64 `gorm:"not null"`
	ItemsRecycled int     `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CertificateModel) TableName() string {
	return "certificates"
}
