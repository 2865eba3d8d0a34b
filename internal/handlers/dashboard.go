package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/engine"
	"conformo/internal/models"
)

// Dashboard returns the per-section progress plus the headline counters the
// UI shows on the landing page.
func Dashboard(calc *engine.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth(c)
		if !ok {
			return
		}

		report := calc.Calculate(c.Request.Context(), ac.OrganizationID)

		var openNCs, highRisks int64
		database.DB.Model(&models.NonConformity{}).
			Where("organization_id = ? AND status <> ?", ac.OrganizationID, models.NCClosed).
			Count(&openNCs)
		database.DB.Model(&models.Risk{}).
			Where("organization_id = ? AND inherent_score >= 13 AND verification_status = ?",
				ac.OrganizationID, models.VerificationNotVerified).
			Count(&highRisks)

		c.JSON(http.StatusOK, gin.H{
			"progress":   report,
			"open_ncs":   openNCs,
			"high_risks": highRisks,
		})
	}
}
