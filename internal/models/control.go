package models

import (
	"time"

	"gorm.io/gorm"
)

type ControlStatus string

const (
	ControlNotImplemented ControlStatus = "not_implemented"
	ControlPartial        ControlStatus = "partial"
	ControlImplemented    ControlStatus = "implemented"
	ControlNotApplicable  ControlStatus = "not_applicable"
)

// AuditOutcome is one entry of a control's append-only audit history.
type AuditOutcome struct {
	AuditID   uint      `json:"audit_id"`
	AuditCode string    `json:"audit_code"`
	Date      time.Time `json:"date"`
	Result    string    `json:"result"`
	Auditor   string    `json:"auditor"`
}

// Control is an organization's instance of an Annex A catalog control.
// There are exactly 93 per organization, created at provisioning time;
// nothing in the application creates or deletes control rows afterwards.
type Control struct {
	gorm.Model
	OrganizationID uint   `gorm:"uniqueIndex:uniq_control_org_ref"`
	ControlID      string `gorm:"size:16;not null;uniqueIndex:uniq_control_org_ref"` // catalog reference, e.g. "A.8.13"
	Title          string `gorm:"size:255;not null"`
	Domain         string `gorm:"size:8;not null"` // A.5 / A.6 / A.7 / A.8

	Status      ControlStatus `gorm:"type:varchar(20);not null;default:not_implemented"`
	Responsible string        `gorm:"size:255"`

	LastAuditDate   *time.Time
	LastAuditResult string         `gorm:"size:20"`
	AuditHistory    []AuditOutcome `gorm:"serializer:json;type:jsonb"`
}
