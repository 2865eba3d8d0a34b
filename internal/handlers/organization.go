package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

type organizationRequest struct {
	Name         string `json:"name"`
	VATNumber    string `json:"vat_number"`
	Industry     string `json:"industry"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ISMSScope    string `json:"isms_scope"`
}

// CreateOrganization creates the tenant and provisions its 93 Annex A
// controls and SoA items in the same breath.
func CreateOrganization(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		jsonError(c, http.StatusBadRequest, "organization name must be at least 3 characters")
		return
	}

	org := models.Organization{
		Name:         req.Name,
		VATNumber:    req.VATNumber,
		Industry:     req.Industry,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ISMSScope:    req.ISMSScope,
	}
	if err := database.DB.Create(&org).Error; err != nil {
		jsonError(c, http.StatusBadRequest, "failed to create organization")
		return
	}

	if err := database.ProvisionOrganization(org.ID); err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to provision controls")
		return
	}

	database.LogActivity(org.ID, ac.UserID, "organization", org.ID, "create", org.Name)
	c.JSON(http.StatusCreated, org)
}

func GetOrganization(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var org models.Organization
	if err := database.DB.First(&org, ac.OrganizationID).Error; err != nil {
		jsonError(c, http.StatusNotFound, "organization not found")
		return
	}
	c.JSON(http.StatusOK, org)
}

// UpdateOrganization edits the tenant record, including the ISMS scope the
// progress calculator keys on.
func UpdateOrganization(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var org models.Organization
	if err := database.DB.First(&org, ac.OrganizationID).Error; err != nil {
		jsonError(c, http.StatusNotFound, "organization not found")
		return
	}

	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		org.Name = name
	}
	if req.VATNumber != "" {
		org.VATNumber = req.VATNumber
	}
	if req.Industry != "" {
		org.Industry = req.Industry
	}
	if req.ContactName != "" {
		org.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		org.ContactEmail = req.ContactEmail
	}
	if req.ISMSScope != "" {
		org.ISMSScope = req.ISMSScope
	}

	if err := database.DB.Save(&org).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update organization")
		return
	}

	database.LogActivity(org.ID, ac.UserID, "organization", org.ID, "update", "")
	c.JSON(http.StatusOK, org)
}
