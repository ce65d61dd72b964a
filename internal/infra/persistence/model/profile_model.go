package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel is the GORM-specific struct for the 'profiles' table.
// One row per authenticated user, created lazily on first use.
type ProfileModel struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FullName      string    `gorm:"type:varchar(255)"`
	CarbonBalance int       `gorm:"not null;default:0"`
	CO2Saved      float64   `gorm:"column:co2_saved;not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
