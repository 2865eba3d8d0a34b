package models

import (
	"time"

	"gorm.io/gorm"
)

type RiskStatus string

const (
	RiskIdentified  RiskStatus = "identified"
	RiskInTreatment RiskStatus = "in_treatment"
	RiskTreated     RiskStatus = "treated"
	RiskAccepted    RiskStatus = "accepted"
	RiskClosed      RiskStatus = "closed" // closure is a status transition, risks are never hard-deleted
)

type VerificationStatus string

const (
	VerificationNotVerified VerificationStatus = "not_verified"
	VerificationVerified    VerificationStatus = "verified"
)

type Risk struct {
	gorm.Model
	OrganizationID uint `gorm:"uniqueIndex:uniq_risk_org_code"`
	Organization   Organization

	AssetID *uint
	Asset   *Asset

	Code        string `gorm:"size:64;not null;uniqueIndex:uniq_risk_org_code"` // human-readable risk id, unique within org
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	// Inherent scoring: labels from the matrix vocabulary, score = prob x impact.
	InherentProbability string `gorm:"size:20;not null"`
	InherentImpact      string `gorm:"size:20;not null"`
	InherentScore       int    `gorm:"not null"`
	InherentLevel       string `gorm:"size:16;not null"` // Basso / Medio / Alto / Critico

	ResidualScore      *int
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:not_verified"`
	Status             RiskStatus         `gorm:"type:varchar(20);not null;default:identified"`

	RelatedControls   []string `gorm:"serializer:json;type:jsonb"`
	SuggestedControls []string `gorm:"serializer:json;type:jsonb"`
	AutoGenerated     bool

	TreatmentPlan        string `gorm:"type:text"`
	Notes                string `gorm:"type:text"`
	LastVerificationDate *time.Time
	VerificationAuditID  *uint
}
