package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

func ListNonConformities(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	q := database.DB.Where("organization_id = ?", ac.OrganizationID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var ncs []models.NonConformity
	q.Order("created_at desc").Find(&ncs)
	c.JSON(http.StatusOK, ncs)
}

type ncUpdateRequest struct {
	Status           string `json:"status"`
	CorrectiveAction string `json:"corrective_action"`
	ClosureNotes     string `json:"closure_notes"`
}

// UpdateNonConformity moves an NC through open -> verification -> closed.
// Audit-driven auto-closure lives in the linkage engine; this is the manual
// path.
func UpdateNonConformity(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid non-conformity id")
		return
	}

	var nc models.NonConformity
	if err := database.DB.
		Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
		First(&nc).Error; err != nil {
		jsonError(c, http.StatusNotFound, "non-conformity not found")
		return
	}

	var req ncUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CorrectiveAction != "" {
		nc.CorrectiveAction = req.CorrectiveAction
	}

	if req.Status != "" {
		next := models.NCStatus(req.Status)
		switch {
		case nc.Status == models.NCOpen && next == models.NCVerification:
			nc.Status = next
		case nc.Status == models.NCVerification && next == models.NCClosed:
			now := time.Now()
			nc.Status = next
			nc.ClosedAt = &now
			nc.ClosureNotes = req.ClosureNotes
		case nc.Status == models.NCVerification && next == models.NCOpen:
			// verification failed, reopen
			nc.Status = next
		default:
			jsonError(c, http.StatusBadRequest, "invalid status transition")
			return
		}
	}

	if err := database.DB.Save(&nc).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update non-conformity")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "nonconformity", nc.ID, "update", string(nc.Status))
	c.JSON(http.StatusOK, nc)
}
