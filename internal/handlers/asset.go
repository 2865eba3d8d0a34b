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

type assetRequest struct {
	Name                 string   `json:"name"`
	AssetType            string   `json:"asset_type"`
	Criticality          string   `json:"criticality"`
	Confidentiality      string   `json:"confidentiality"`
	IntegrityRequired    bool     `json:"integrity_required"`
	AvailabilityRequired bool     `json:"availability_required"`
	Owner                string   `json:"owner"`
	Description          string   `json:"description"`
	RelatedControls      []string `json:"related_controls"`
}

func (r *assetRequest) validate() string {
	if len(strings.TrimSpace(r.Name)) < 3 {
		return "asset name must be at least 3 characters"
	}
	switch models.AssetType(r.AssetType) {
	case models.AssetHardware, models.AssetSoftware, models.AssetData, models.AssetService, models.AssetPeople:
	default:
		return "invalid asset_type"
	}
	if _, err := risk.CriticalityScore(r.Criticality); err != nil {
		return "invalid criticality"
	}
	if _, err := risk.ConfidentialityScore(r.Confidentiality); err != nil {
		return "invalid confidentiality"
	}
	return ""
}

func ListAssets(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var assets []models.Asset
	database.DB.
		Where("organization_id = ?", ac.OrganizationID).
		Order("name asc").
		Find(&assets)

	c.JSON(http.StatusOK, assets)
}

func GetAsset(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid asset id")
		return
	}

	var asset models.Asset
	if err := database.DB.
		Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
		First(&asset).Error; err != nil {
		jsonError(c, http.StatusNotFound, "asset not found")
		return
	}
	c.JSON(http.StatusOK, asset)
}

func CreateAsset(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(c, http.StatusBadRequest, msg)
		return
	}

	asset := models.Asset{
		OrganizationID:       ac.OrganizationID,
		Name:                 strings.TrimSpace(req.Name),
		AssetType:            models.AssetType(req.AssetType),
		Criticality:          models.Criticality(req.Criticality),
		Confidentiality:      models.Confidentiality(req.Confidentiality),
		IntegrityRequired:    req.IntegrityRequired,
		AvailabilityRequired: req.AvailabilityRequired,
		Owner:                req.Owner,
		Description:          req.Description,
		RelatedControls:      req.RelatedControls,
	}
	if err := database.DB.Create(&asset).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to create asset")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "asset", asset.ID, "create", asset.Name)
	c.JSON(http.StatusCreated, asset)
}

func UpdateAsset(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid asset id")
		return
	}

	var asset models.Asset
	if err := database.DB.
		Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
		First(&asset).Error; err != nil {
		jsonError(c, http.StatusNotFound, "asset not found")
		return
	}

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(c, http.StatusBadRequest, msg)
		return
	}

	asset.Name = strings.TrimSpace(req.Name)
	asset.AssetType = models.AssetType(req.AssetType)
	asset.Criticality = models.Criticality(req.Criticality)
	asset.Confidentiality = models.Confidentiality(req.Confidentiality)
	asset.IntegrityRequired = req.IntegrityRequired
	asset.AvailabilityRequired = req.AvailabilityRequired
	asset.Owner = req.Owner
	asset.Description = req.Description
	asset.RelatedControls = req.RelatedControls

	if err := database.DB.Save(&asset).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to update asset")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "asset", asset.ID, "update", asset.Name)
	c.JSON(http.StatusOK, asset)
}

// GenerateAssetRisks triggers the idempotent risk auto-generation for a
// critical asset.
func GenerateAssetRisks(gen *engine.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth(c)
		if !ok {
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			jsonError(c, http.StatusBadRequest, "invalid asset id")
			return
		}

		// scope check before handing off to the engine
		var asset models.Asset
		if err := database.DB.
			Where("id = ? AND organization_id = ?", id, ac.OrganizationID).
			First(&asset).Error; err != nil {
			jsonError(c, http.StatusNotFound, "asset not found")
			return
		}

		created, err := gen.CheckAndGenerateRisksForAsset(c.Request.Context(), asset.ID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to generate risks")
			return
		}

		if created > 0 {
			database.LogActivity(ac.OrganizationID, ac.UserID, "asset", asset.ID, "generate_risks", strconv.Itoa(created))
		}
		c.JSON(http.StatusOK, gin.H{"risks_created": created})
	}
}
