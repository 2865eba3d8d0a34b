package models

import "gorm.io/gorm"

// RiskTemplate is a catalog entry users instantiate into Risks. The catalog
// is global, not organization-scoped.
type RiskTemplate struct {
	gorm.Model
	Code     string `gorm:"size:32;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
	Category string `gorm:"size:64"`

	ThreatDescription string `gorm:"type:text"`

	DefaultProbability string `gorm:"size:20;not null"` // matrix label
	DefaultImpact      string `gorm:"size:20;not null"`

	SuggestedControls []string `gorm:"serializer:json;type:jsonb"`
}
