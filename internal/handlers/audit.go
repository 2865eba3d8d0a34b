package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"conformo/internal/database"
	"conformo/internal/engine"
	"conformo/internal/models"
)

func ListAudits(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var audits []models.Audit
	database.DB.
		Where("organization_id = ?", ac.OrganizationID).
		Order("created_at desc").
		Find(&audits)

	c.JSON(http.StatusOK, audits)
}

func GetAudit(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	audit, ok := loadAudit(c, ac.OrganizationID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, audit)
}

type auditRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	AuditorName string `json:"auditor_name"`
	Scope       string `json:"scope"`
	PlannedDate string `json:"planned_date"` // "2006-01-02"
}

func CreateAudit(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(req.Title)) < 3 {
		jsonError(c, http.StatusBadRequest, "audit title must be at least 3 characters")
		return
	}

	auditType := req.Type
	if auditType == "" {
		auditType = "internal"
	}

	audit := models.Audit{
		OrganizationID: ac.OrganizationID,
		Code:           fmt.Sprintf("AUD-%s", time.Now().Format("20060102-150405")),
		Title:          strings.TrimSpace(req.Title),
		Type:           auditType,
		Status:         models.AuditPlanned,
		AuditorName:    req.AuditorName,
		Scope:          req.Scope,
	}
	if req.PlannedDate != "" {
		if d, err := time.Parse("2006-01-02", req.PlannedDate); err == nil {
			audit.PlannedDate = &d
		}
	}

	if err := database.DB.Create(&audit).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to create audit")
		return
	}

	database.LogActivity(ac.OrganizationID, ac.UserID, "audit", audit.ID, "create", audit.Code)
	c.JSON(http.StatusCreated, audit)
}

type checklistItemRequest struct {
	ControlReference string `json:"control_reference"`
	Result           string `json:"result"`
	UpdateLinked     *bool  `json:"update_linked"`
	AutoCreateNC     bool   `json:"auto_create_nc"`
	AuditNotes       string `json:"audit_notes"`
}

// SetChecklist replaces the audit's checklist. Control titles are filled
// from the organization's control rows; unanswered items keep an empty
// result.
func SetChecklist(c *gin.Context) {
	ac, ok := auth(c)
	if !ok {
		return
	}

	audit, ok := loadAudit(c, ac.OrganizationID)
	if !ok {
		return
	}
	if audit.ResultsApplied {
		jsonError(c, http.StatusBadRequest, "audit results already applied")
		return
	}

	var reqs []checklistItemRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]models.AuditChecklistItem, 0, len(reqs))
	for _, r := range reqs {
		switch models.ChecklistResult(r.Result) {
		case models.ResultConforming, models.ResultNonConforming, "":
		default:
			jsonError(c, http.StatusBadRequest, "invalid checklist result: "+r.Result)
			return
		}

		item := models.AuditChecklistItem{
			AuditID:          audit.ID,
			ControlReference: r.ControlReference,
			Result:           models.ChecklistResult(r.Result),
			UpdateLinked:     true,
			AutoCreateNC:     r.AutoCreateNC,
			AuditNotes:       r.AuditNotes,
		}
		if r.UpdateLinked != nil {
			item.UpdateLinked = *r.UpdateLinked
		}

		var ctrl models.Control
		if err := database.DB.
			Where("organization_id = ? AND control_id = ?", ac.OrganizationID, r.ControlReference).
			First(&ctrl).Error; err == nil {
			item.ControlTitle = ctrl.Title
		}

		items = append(items, item)
	}

	if err := database.DB.Where("audit_id = ?", audit.ID).Delete(&models.AuditChecklistItem{}).Error; err != nil {
		jsonError(c, http.StatusInternalServerError, "failed to replace checklist")
		return
	}
	if len(items) > 0 {
		if err := database.DB.Create(&items).Error; err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to save checklist")
			return
		}
	}

	if audit.Status == models.AuditPlanned {
		audit.Status = models.AuditInProgress
		database.DB.Save(audit)
	}

	c.JSON(http.StatusOK, items)
}

// ApplyAuditResults runs the linkage cascade over the audit's answered
// checklist and stamps the summary counters on the audit record.
func ApplyAuditResults(linkage *engine.Linkage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth(c)
		if !ok {
			return
		}

		audit, ok := loadAudit(c, ac.OrganizationID)
		if !ok {
			return
		}
		if audit.ResultsApplied {
			jsonError(c, http.StatusBadRequest, "audit results already applied")
			return
		}

		var items []models.AuditChecklistItem
		database.DB.Where("audit_id = ?", audit.ID).Order("id asc").Find(&items)
		if len(items) == 0 {
			jsonError(c, http.StatusBadRequest, "audit has no checklist")
			return
		}

		auditDate := time.Now()
		inputs := make([]engine.ChecklistInput, 0, len(items))
		for _, it := range items {
			if it.Result == "" {
				continue // unanswered items are not findings
			}
			inputs = append(inputs, engine.ChecklistInput{
				ControlReference: it.ControlReference,
				ControlTitle:     it.ControlTitle,
				Result:           it.Result,
				UpdateLinked:     it.UpdateLinked,
				AutoCreateNC:     it.AutoCreateNC,
				AuditNotes:       it.AuditNotes,
			})
		}

		meta := engine.AuditMeta{
			OrganizationID: ac.OrganizationID,
			AuditCode:      audit.Code,
			AuditorName:    audit.AuditorName,
			AuditDate:      auditDate,
		}
		summary := linkage.Apply(c.Request.Context(), audit.ID, meta, inputs)

		audit.Status = models.AuditCompleted
		audit.AuditDate = &auditDate
		audit.ControlsUpdated = summary.ControlsUpdated
		audit.RisksUpdated = summary.RisksUpdated
		audit.NCsClosed = summary.NCsClosed
		audit.NCsCreated = summary.NCsCreated
		audit.ResultsApplied = true
		if err := database.DB.Save(audit).Error; err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to update audit")
			return
		}

		database.LogActivity(ac.OrganizationID, ac.UserID, "audit", audit.ID, "apply_results",
			fmt.Sprintf("controls=%d risks=%d nc_closed=%d nc_created=%d",
				summary.ControlsUpdated, summary.RisksUpdated, summary.NCsClosed, summary.NCsCreated))

		c.JSON(http.StatusOK, summary)
	}
}

// GetAuditSuggestions returns the three prioritized what-to-audit-next
// lists.
func GetAuditSuggestions(linkage *engine.Linkage) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth(c)
		if !ok {
			return
		}

		sugg, err := linkage.SmartSuggestions(c.Request.Context(), ac.OrganizationID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to load suggestions")
			return
		}
		c.JSON(http.StatusOK, sugg)
	}
}

func loadAudit(c *gin.Context, orgID uint) (*models.Audit, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonError(c, http.StatusBadRequest, "invalid audit id")
		return nil, false
	}

	var audit models.Audit
	if err := database.DB.
		Preload("ChecklistItems").
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&audit).Error; err != nil {
		jsonError(c, http.StatusNotFound, "audit not found")
		return nil, false
	}
	return &audit, true
}
