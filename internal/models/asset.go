package models

import "gorm.io/gorm"

type AssetType string

const (
	AssetHardware AssetType = "hardware"
	AssetSoftware AssetType = "software"
	AssetData     AssetType = "data"
	AssetService  AssetType = "service"
	AssetPeople   AssetType = "people"
)

// Criticality and Confidentiality are fixed ordinal vocabularies; the
// numeric 1-5 scores live in internal/risk.
type Criticality string

const (
	CriticalityBasso   Criticality = "Basso"
	CriticalityMedio   Criticality = "Medio"
	CriticalityAlto    Criticality = "Alto"
	CriticalityCritico Criticality = "Critico"
)

type Confidentiality string

const (
	ConfidentialityPubblico      Confidentiality = "Pubblico"
	ConfidentialityInterno       Confidentiality = "Interno"
	ConfidentialityConfidenziale Confidentiality = "Confidenziale"
	ConfidentialitySegreto       Confidentiality = "Segreto"
)

type Asset struct {
	gorm.Model
	OrganizationID uint
	Organization   Organization

	Name            string          `gorm:"size:255;not null"`
	AssetType       AssetType       `gorm:"type:varchar(50);not null"`
	Criticality     Criticality     `gorm:"type:varchar(20);not null"`
	Confidentiality Confidentiality `gorm:"type:varchar(20);not null"`

	IntegrityRequired    bool
	AvailabilityRequired bool

	Owner           string   `gorm:"size:255"`
	Description     string   `gorm:"type:text"`
	RelatedControls []string `gorm:"serializer:json;type:jsonb"` // Annex A references, e.g. "A.8.13"
}
