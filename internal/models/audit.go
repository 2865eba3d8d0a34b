package models

import (
	"time"

	"gorm.io/gorm"
)

type AuditStatus string

const (
	AuditPlanned    AuditStatus = "planned"
	AuditInProgress AuditStatus = "in_progress"
	AuditCompleted  AuditStatus = "completed"
)

type ChecklistResult string

const (
	ResultConforming    ChecklistResult = "conforming"
	ResultNonConforming ChecklistResult = "non_conforming"
)

type Audit struct {
	gorm.Model
	OrganizationID uint
	Organization   Organization

	Code        string      `gorm:"size:64;not null"`
	Title       string      `gorm:"size:255;not null"`
	Type        string      `gorm:"size:50"` // "internal", "surveillance", "certification"
	Status      AuditStatus `gorm:"type:varchar(20);not null;default:planned"`
	AuditorName string      `gorm:"size:255"`
	Scope       string      `gorm:"type:text"`

	PlannedDate *time.Time
	AuditDate   *time.Time

	// Summary counters stamped after the checklist results are applied.
	ControlsUpdated int
	RisksUpdated    int
	NCsClosed       int
	NCsCreated      int
	ResultsApplied  bool

	ChecklistItems []AuditChecklistItem
}

// AuditChecklistItem is one control's finding within a single audit.
type AuditChecklistItem struct {
	gorm.Model
	AuditID uint

	ControlReference string          `gorm:"size:16;not null"`
	ControlTitle     string          `gorm:"size:255"`
	Result           ChecklistResult `gorm:"type:varchar(20)"` // empty until answered
	UpdateLinked     bool            `gorm:"default:true"`     // opt-out of linked-record propagation
	AutoCreateNC     bool
	AuditNotes       string `gorm:"type:text"`
}
