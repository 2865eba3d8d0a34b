package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/models"
)

func ListPolicies(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var policies []models.Policy
	database.DB.
		Where("organization_id = ?", ac.OrganizationID).
		Order("title asc").
		Find(&policies)

	c.JSON(http.StatusOK, policies)
}

type policyRequest struct {
	Title      string `json:"title"`
	Status     string `json:"status"`
	Version    string `json:"version"`
	Owner      string `json:"owner"`
	ReviewDate string `json:"review_date"` // "2006-01-02"
	Content    string `json:"content"`
}

func CreatePolicy(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(req.Title)) < 3 {
		jsonError(c, http.StatusBadRequest, "policy title must be at least 3 characters")
		return
	}

	p := models.Policy{
		OrganizationID: ac.OrganizationID,
		Title:          strings.TrimSpace(req.Title),
		Status:         models.PolicyDraft,
		Version:        req.Version,
		Owner:          req.Owner,
		Content:        req.Content,
	}
	if req.ReviewDate != "" {
		if d, err := time.Parse("2006-01-02", req.ReviewDate); err == nil {
			p.ReviewDate = &d
		}
	}

	if err := database.DB.Create(&p).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to create policy")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "policy", p.ID, "create", p.Title)
	c.JSON(http.StatusCreated, p)
}

func UpdatePolicy(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid policy id")
		return
	}

	var p models.Policy
	if err := database.DB.
		Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
		First(&p).Error; err != nil {
		jsonError(c, http.StatusNotFound, "policy not found")
		return
	}

	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		p.Title = title
	}
	if req.Status != "" {
		switch models.PolicyStatus(req.Status) {
		case models.PolicyDraft, models.PolicyApproved, models.PolicySuperseded:
			p.Status = models.PolicyStatus(req.Status)
		default:
			jsonError(c, http.StatusBadRequest, "invalid policy status")
			return
		}
	}
	if req.Version != "" {
		p.Version = req.Version
	}
	if req.Owner != "" {
		p.Owner = req.Owner
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	if req.ReviewDate != "" {
		if d, err := time.Parse("2006-01-02", req.ReviewDate); err == nil {
			p.ReviewDate = &d
		}
	}

	if err := database.DB.Save(&p).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update policy")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "policy", p.ID, "update", p.Title)
	c.JSON(http.StatusOK, p)
}
