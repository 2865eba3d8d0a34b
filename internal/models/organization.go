package models

import "gorm.io/gorm"

// Organization is the tenant. Every domain record hangs off one, and the
// Annex A controls and SoA items are provisioned per organization at
// creation time.
type Organization struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	VATNumber string `gorm:"size:32"`
	Industry  string `gorm:"size:255"`

	ContactName  string `gorm:"size:255"`
	ContactEmail string `gorm:"size:255"`

	// ISMSScope is the declared scope of the management system; the
	// progress calculator treats the organization section as complete
	// once it is filled in.
	ISMSScope string `gorm:"type:text"`

	Assets   []Asset
	Risks    []Risk
	Policies []Policy
	Audits   []Audit
}
