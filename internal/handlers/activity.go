package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

func ListActivity(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var logs []models.ActivityLog
	database.DB.
		Preload("User").
		Where("organization_id = ?", ac.OrganizationID).
		Order("created_at desc").
		Limit(200).
		Find(&logs)

	c.JSON(http.StatusOK, logs)
}
