package models

import "time"

// ActivityLog records every mutating action. The progress calculator also
// reads it to tell whether the SoA has ever been exported.
type ActivityLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	OrganizationID uint
	UserID         uint
	User           User

	Entity   string `gorm:"size:50;not null"` // "asset", "risk", "soa", "audit" ...
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "update", "export" ...
	Details  string `gorm:"type:text"`
}
