package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

func ListSoA(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var items []models.SoAItem
	database.DB.
		Where("organization_id = ?", ac.OrganizationID).
		Order("control_reference asc").
		Find(&items)

	c.JSON(http.StatusOK, items)
}

type soaUpdateRequest struct {
	Applicability        string   `json:"applicability"`
	ImplementationStatus string   `json:"implementation_status"`
	Justification        string   `json:"justification"`
	RelatedRisks         []string `json:"related_risks"`
}

// UpdateSoAItem edits applicability/justification/risk links. Promotion to
// verified happens only through the audit linkage, never here.
func UpdateSoAItem(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	ref := c.Param("control_id")

	var item models.SoAItem
	if err := database.DB.
		Where("organization_id = ? AND control_reference = ?", ac.OrganizationID, ref).
		First(&item).Error; err != nil {
		jsonError(c, http.StatusNotFound, "SoA item not found")
		return
	}

	var req soaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Applicability != "" {
		switch models.Applicability(req.Applicability) {
		case models.Applicable, models.NotApplicable:
			item.Applicability = models.Applicability(req.Applicability)
		default:
			jsonError(c, http.StatusBadRequest, "invalid applicability")
			return
		}
	}
	if req.ImplementationStatus != "" {
		switch models.ImplementationStatus(req.ImplementationStatus) {
		case models.ImplementationNotImplemented:
			item.ImplementationStatus = models.ImplementationNotImplemented
		case models.ImplementationImplemented:
			item.ImplementationStatus = models.ImplementationImplemented
			if item.ImplementationDate == nil {
				now := time.Now()
				item.ImplementationDate = &now
			}
		default:
			jsonError(c, http.StatusBadRequest, "implementation status can only be set to not_implemented or implemented")
			return
		}
	}
	if req.Justification != "" {
		item.Justification = req.Justification
	}
	if req.RelatedRisks != nil {
		item.RelatedRisks = req.RelatedRisks
	}

	if err := database.DB.Save(&item).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update SoA item")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "soa", item.ID, "update", item.ControlReference)
	c.JSON(http.StatusOK, item)
}

// ExportSoA returns the full SoA document and records the export in the
// activity log; the progress calculator reads that entry for the "soa"
// (and mirrored "documentation") section.
func ExportSoA(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var items []models.SoAItem
	database.DB.
		Where("organization_id = ?", ac.OrganizationID).
		Order("control_reference asc").
		Find(&items)

	database.LogActivity(ac.OrganizationID, ac.UserID, "soa", 0, "export", "")

	c.JSON(http.StatusOK, gin.H{
		"organization_id": ac.OrganizationID,
		"generated_at":    time.Now(),
		"items":           items,
	})
}
