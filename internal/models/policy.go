package models

import (
	"time"

	"gorm.io/gorm"
)

type PolicyStatus string

const (
	PolicyDraft      PolicyStatus = "draft"
	PolicyApproved   PolicyStatus = "approved"
	PolicySuperseded PolicyStatus = "superseded"
)

type Policy struct {
	gorm.Model
	OrganizationID uint
	Organization   Organization

	Title      string       `gorm:"size:255;not null"`
	Status     PolicyStatus `gorm:"type:varchar(20);not null;default:draft"`
	Version    string       `gorm:"size:20"`
	Owner      string       `gorm:"size:255"`
	ReviewDate *time.Time
	Content    string `gorm:"type:text"`
}
