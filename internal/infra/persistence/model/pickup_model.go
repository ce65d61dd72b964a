// Package model holds the GORM-specific structs mirroring the database schema.
package model

import (
	"time"
)

// PickupModel is the GORM-specific struct for the 'pickups' table.
// It represents a scheduled e-waste collection request.
type PickupModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID   uint64 `gorm:"not null;index"`
	Status      string `gorm:"type:varchar(20);not null;index"`
	PickupDate  time.Time
	Timeslot    string            `gorm:"type:varchar(50)"`
	Latitude    float64           `gorm:"not null"`
	Longitude   float64           `gorm:"not null"`
	AddressText string            `gorm:"type:text"`
	ImageURL    string            `gorm:"type:text"`
	Items       []PickupItemModel `gorm:"foreignKey:PickupID"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PickupModel) TableName() string {
	return "pickups"
}

// PickupItemModel is the GORM-specific struct for the 'pickup_items' table.
type PickupItemModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	PickupID    uint64 `gorm:"not null;index"`
	ItemName    string `gorm:"type:varchar(100);not null"`
	Condition   string `gorm:"type:varchar(20);not null"`
	CreditValue int    `gorm:"not null"`
	Description string `gorm:"type:text"`
	YearsUsed   int
}

// TableName explicitly sets the table name for GORM.
func (PickupItemModel) TableName() string {
	return "pickup_items"
}
