package database

import (
	"fmt"

	"gorm.io/gorm"

	"conformo/internal/catalog"
	"conformo/internal/models"
)

// ProvisionOrganization creates the 93 Annex A control rows and their SoA
// items for a fresh organization, inside one transaction. The rest of the
// application only ever updates these rows, so the invariant "exactly 93
// controls per organization" holds from day one.
func ProvisionOrganization(orgID uint) error {
	entries := catalog.Controls()

	controls := make([]models.Control, 0, len(entries))
	items := make([]models.SoAItem, 0, len(entries))
	for _, e := range entries {
		controls = append(controls, models.Control{
			OrganizationID: orgID,
			ControlID:      e.ID,
			Title:          e.Title,
			Domain:         e.Domain,
			Status:         models.ControlNotImplemented,
		})
		items = append(items, models.SoAItem{
			OrganizationID:       orgID,
			ControlReference:     e.ID,
			ControlTitle:         e.Title,
			Applicability:        models.Applicable,
			ImplementationStatus: models.ImplementationNotImplemented,
		})
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&controls).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("provision organization %d: %w", orgID, err)
	}
	return nil
}

// seedRiskTemplates fills the global template catalog users instantiate
// risks from. Idempotent: existing codes are kept as-is.
func seedRiskTemplates() {
	templates := []models.RiskTemplate{
		{
			Code:               "TPL-PHISH",
			Name:               "Phishing e ingegneria sociale",
			Category:           "Persone",
			ThreatDescription:  "Compromissione di credenziali tramite campagne di phishing mirate al personale",
			DefaultProbability: "Alta",
			DefaultImpact:      "Alta",
			SuggestedControls:  []string{"A.6.3", "A.8.5", "A.8.23"},
		},
		{
			Code:               "TPL-RANSOM",
			Name:               "Ransomware",
			Category:           "Malware",
			ThreatDescription:  "Cifratura dei dati aziendali con richiesta di riscatto",
			DefaultProbability: "Media",
			DefaultImpact:      "Molto Alta",
			SuggestedControls:  []string{"A.8.7", "A.8.13", "A.8.16"},
		},
		{
			Code:               "TPL-SUPPLIER",
			Name:               "Compromissione fornitore",
			Category:           "Fornitori",
			ThreatDescription:  "Incidente di sicurezza presso un fornitore con accesso ai sistemi aziendali",
			DefaultProbability: "Media",
			DefaultImpact:      "Alta",
			SuggestedControls:  []string{"A.5.19", "A.5.20", "A.5.21", "A.5.22"},
		},
		{
			Code:               "TPL-VULN",
			Name:               "Vulnerabilità non corrette",
			Category:           "Tecnologico",
			ThreatDescription:  "Sfruttamento di vulnerabilità note non ancora corrette sui sistemi esposti",
			DefaultProbability: "Alta",
			DefaultImpact:      "Alta",
			SuggestedControls:  []string{"A.8.8", "A.8.9", "A.8.19"},
		},
		{
			Code:               "TPL-INSIDER",
			Name:               "Abuso di privilegi interni",
			Category:           "Persone",
			ThreatDescription:  "Uso improprio di accessi privilegiati da parte di personale interno",
			DefaultProbability: "Bassa",
			DefaultImpact:      "Alta",
			SuggestedControls:  []string{"A.5.3", "A.8.2", "A.8.15", "A.8.18"},
		},
	}

	for _, tpl := range templates {
		var count int64
		if err := DB.Model(&models.RiskTemplate{}).
			Where("code = ?", tpl.Code).
			Count(&count).Error; err != nil {
			continue
		}
		if count > 0 {
			continue
		}
		DB.Create(&tpl)
	}
}
