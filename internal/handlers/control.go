package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

func ListControls(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	q := database.DB.Where("organization_id = ?", ac.OrganizationID)
	if domain := c.Query("domain"); domain != "" {
		q = q.Where("domain = ?", domain)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var controls []models.Control
	q.Order("control_id asc").Find(&controls)
	c.JSON(http.StatusOK, controls)
}

type controlUpdateRequest struct {
	Status      string `json:"status"`
	Responsible string `json:"responsible"`
}

// UpdateControlStatus updates the implementation status of one catalog
// control. Control rows are provisioned with the organization; they are
// never created or deleted here.
func UpdateControlStatus(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	controlID := c.Param("control_id")

	var ctrl models.Control
	if err := database.DB.
		Where("organization_id = ? AND control_id = ?", ac.OrganizationID, controlID).
		First(&ctrl).Error; err != nil {
		jsonError(c, http.StatusNotFound, "control not found")
		return
	}

	var req controlUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch models.ControlStatus(req.Status) {
	case models.ControlNotImplemented, models.ControlPartial, models.ControlImplemented, models.ControlNotApplicable:
		ctrl.Status = models.ControlStatus(req.Status)
	default:
		jsonError(c, http.StatusBadRequest, "invalid control status")
		return
	}
	if req.Responsible != "" {
		ctrl.Responsible = req.Responsible
	}

	if err := database.DB.Save(&ctrl).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update control")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "control", ctrl.ID, "update", ctrl.ControlID)
	c.JSON(http.StatusOK, ctrl)
}
