package models

import (
	"time"

	"gorm.io/gorm"
)

type Applicability string

const (
	Applicable    Applicability = "applicable"
	NotApplicable Applicability = "not_applicable"
)

type ImplementationStatus string

const (
	ImplementationNotImplemented ImplementationStatus = "not_implemented"
	ImplementationImplemented    ImplementationStatus = "implemented"
	ImplementationVerified       ImplementationStatus = "verified"
)

// EvidenceDocument is one entry of a SoA item's append-only evidence list.
type EvidenceDocument struct {
	Type      string    `json:"type"` // "audit_report"
	AuditID   uint      `json:"audit_id"`
	AuditCode string    `json:"audit_code"`
	Date      time.Time `json:"date"`
	Result    string    `json:"result"`
	Auditor   string    `json:"auditor"`
}

// SoAItem is one Statement of Applicability entry, one per control per
// organization.
type SoAItem struct {
	gorm.Model
	OrganizationID   uint   `gorm:"uniqueIndex:uniq_soa_org_ref"`
	ControlReference string `gorm:"size:16;not null;uniqueIndex:uniq_soa_org_ref"`
	ControlTitle     string `gorm:"size:255"`

	Applicability        Applicability        `gorm:"type:varchar(20);not null;default:applicable"`
	ImplementationStatus ImplementationStatus `gorm:"type:varchar(20);not null;default:not_implemented"`
	ComplianceScore      int                  // 0-100; invariant: verified implies 100
	Justification        string               `gorm:"type:text"`

	RelatedRisks      []string           `gorm:"serializer:json;type:jsonb"` // risk codes
	EvidenceDocuments []EvidenceDocument `gorm:"serializer:json;type:jsonb"`

	ImplementationDate *time.Time
	LastAuditDate      *time.Time
	LastAuditID        *uint
	LastAuditResult    string `gorm:"size:20"`
	VerifiedBy         string `gorm:"size:255"`
	NextReviewDate     *time.Time
}
