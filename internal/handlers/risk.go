package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/engine"
	"conformo/internal/models"
	"conformo/internal/risk"
)

type riskRequest struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	AssetID             *uint    `json:"asset_id"`
	InherentProbability string   `json:"inherent_probability"`
	InherentImpact      string   `json:"inherent_impact"`
	RelatedControls     []string `json:"related_controls"`
	TreatmentPlan       string   `json:"treatment_plan"`
}

func ListRisks(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	q := database.DB.Where("organization_id = ?", ac.OrganizationID)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if c.Query("unverified") == "true" {
		q = q.Where("verification_status = ?", models.VerificationNotVerified)
	}

	var risks []models.Risk
	q.Order("inherent_score desc").Find(&risks)
	c.JSON(http.StatusOK, risks)
}

// CreateRisk scores the labels through the canonical scorer; unrecognized
// labels are rejected at the boundary.
func CreateRisk(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(req.Name)) < 3 {
		jsonError(c, http.StatusBadRequest, "risk name must be at least 3 characters")
		return
	}

	score, err := risk.Score(req.InherentProbability, req.InherentImpact)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "invalid probability or impact label")
		return
	}

	r := models.Risk{
		OrganizationID:      ac.OrganizationID,
		AssetID:             req.AssetID,
		Code:                engine.NewRiskCode(),
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		InherentProbability: req.InherentProbability,
		InherentImpact:      req.InherentImpact,
		InherentScore:       score,
		InherentLevel:       string(risk.CategoryForScore(score)),
		VerificationStatus:  models.VerificationNotVerified,
		Status:              models.RiskIdentified,
		RelatedControls:     req.RelatedControls,
		TreatmentPlan:       req.TreatmentPlan,
	}
	if err := database.DB.Create(&r).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to create risk")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "risk", r.ID, "create", r.Code)
	c.JSON(http.StatusCreated, r)
}

type treatmentRequest struct {
	Status        string `json:"status"`
	TreatmentPlan string `json:"treatment_plan"`
	ResidualScore *int   `json:"residual_score"`
}

var allowedRiskTransitions = map[models.RiskStatus][]models.RiskStatus{
	models.RiskIdentified:  {models.RiskInTreatment, models.RiskAccepted},
	models.RiskInTreatment: {models.RiskTreated, models.RiskAccepted},
	models.RiskTreated:     {models.RiskClosed, models.RiskInTreatment},
	models.RiskAccepted:    {models.RiskClosed, models.RiskInTreatment},
}

// UpdateRiskTreatment moves a risk through its treatment lifecycle.
// Closure is a transition here, never a delete.
func UpdateRiskTreatment(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid risk id")
		return
	}

	var r models.Risk
	if err := database.DB.
		Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
		First(&r).Error; err != nil {
		jsonError(c, http.StatusNotFound, "risk not found")
		return
	}

	var req treatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Status != "" {
		next := models.RiskStatus(req.Status)
		if !transitionAllowed(r.Status, next) {
			jsonError(c, http.StatusBadRequest, "invalid status transition")
			return
		}
		r.Status = next
	}
	if req.TreatmentPlan != "" {
		r.TreatmentPlan = req.TreatmentPlan
	}
	if req.ResidualScore != nil {
		if *req.ResidualScore < 1 || *req.ResidualScore > r.InherentScore {
			jsonError(c, http.StatusBadRequest, "residual score must be between 1 and the inherent score")
			return
		}
		r.ResidualScore = req.ResidualScore
	}

	if err := database.DB.Save(&r).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update risk")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "risk", r.ID, "update", string(r.Status))
	c.JSON(http.StatusOK, r)
}

func transitionAllowed(from, to models.RiskStatus) bool {
	for _, s := range allowedRiskTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ListRiskTemplates(c *gin.Context) {
	if _, ok := auth(c); !ok {
		return
	}

	var templates []models.RiskTemplate
	database.DB.Order("code asc").Find(&templates)
	c.JSON(http.StatusOK, templates)
}

// InstantiateRiskTemplate creates a risk from a catalog template, scoring
// the template defaults through the canonical scorer.
func InstantiateRiskTemplate(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid template id")
		return
	}

	var tpl models.RiskTemplate
	if err := database.DB.First(&tpl, id).Error; err != nil {
		jsonError(c, http.StatusNotFound, "template not found")
		return
	}

	score, err := risk.Score(tpl.DefaultProbability, tpl.DefaultImpact)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "template has invalid labels")
		return
	}

	r := models.Risk{
		OrganizationID:      ac.OrganizationID,
		Code:                engine.NewRiskCode(),
		Name:                tpl.Name,
		Description:         tpl.ThreatDescription,
		InherentProbability: tpl.DefaultProbability,
		InherentImpact:      tpl.DefaultImpact,
		InherentScore:       score,
		InherentLevel:       string(risk.CategoryForScore(score)),
		VerificationStatus:  models.VerificationNotVerified,
		Status:              models.RiskIdentified,
		SuggestedControls:   tpl.SuggestedControls,
	}
	if err := database.DB.Create(&r).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to create risk")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "risk", r.ID, "create_from_template", tpl.Code)
	c.JSON(http.StatusCreated, r)
}
