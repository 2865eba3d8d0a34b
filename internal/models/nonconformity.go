package models

import (
	"time"

	"gorm.io/gorm"
)

type NCStatus string

const (
	NCOpen         NCStatus = "open"
	NCVerification NCStatus = "verification"
	NCClosed       NCStatus = "closed"
)

type NCSeverity string

const (
	NCMinor NCSeverity = "minor"
	NCMajor NCSeverity = "major"
)

type NonConformity struct {
	gorm.Model
	OrganizationID uint `gorm:"uniqueIndex:uniq_nc_org_code"`
	Organization   Organization

	Code        string `gorm:"size:64;not null;uniqueIndex:uniq_nc_org_code"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	Source   string `gorm:"size:20;not null"` // "audit" or "manual"
	SourceID *uint

	Severity       NCSeverity `gorm:"type:varchar(10);not null"`
	Status         NCStatus   `gorm:"type:varchar(20);not null;default:open"`
	RelatedControl string     `gorm:"size:16"`

	DetectionMethod  string `gorm:"size:50"`
	CorrectiveAction string `gorm:"type:text"`

	ClosedAt              *time.Time
	ClosureNotes          string `gorm:"type:text"`
	EffectivenessVerified bool
}
