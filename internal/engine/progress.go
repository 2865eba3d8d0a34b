package engine

import (
	"context"
	"math"

	"go.uber.org/zap"

	"conformo/internal/catalog"
)

// Calculator computes the per-section ISMS completion percentages shown on
// the dashboard and in the certification wizard. It only reads.
type Calculator struct {
	store ProgressStore
	log   *zap.SugaredLogger
}

func NewCalculator(store ProgressStore, log *zap.SugaredLogger) *Calculator {
	return &Calculator{store: store, log: log}
}

// Section ids, in display order.
var progressSections = []string{
	"organization", "assets", "risks", "controls",
	"policies", "soa", "audits", "documentation",
}

type ProgressReport struct {
	Sections map[string]int `json:"sections"`
	Overall  int            `json:"overall"`
}

// Calculate never fails: a section whose query errors contributes 0, so the
// overall figure degrades instead of the whole dashboard breaking.
func (c *Calculator) Calculate(ctx context.Context, orgID uint) ProgressReport {
	s := map[string]int{
		"organization": c.organizationPercent(ctx, orgID),
		"assets":       c.countPercent(ctx, orgID, "assets", c.store.CountAssets, 5),
		"risks":        c.countPercent(ctx, orgID, "risks", c.store.CountRisks, 3),
		"controls":     c.controlsPercent(ctx, orgID),
		"policies":     c.countPercent(ctx, orgID, "policies", c.store.CountPolicies, 3),
		"soa":          c.soaPercent(ctx, orgID),
		"audits":       c.auditsPercent(ctx, orgID),
	}
	s["documentation"] = s["soa"] // derived alias, never computed independently

	total := 0
	for _, id := range progressSections {
		total += s[id]
	}
	overall := int(math.Round(float64(total) / float64(len(progressSections))))

	return ProgressReport{Sections: s, Overall: overall}
}

func (c *Calculator) organizationPercent(ctx context.Context, orgID uint) int {
	org, err := c.store.GetOrganization(ctx, orgID)
	if err != nil || org == nil {
		c.warn("organization", orgID, err)
		return 0
	}
	if org.ISMSScope != "" {
		return 100
	}
	return 0
}

// countPercent applies the fixed 0/50/100 banding: full marks at the
// threshold, half marks for a started section.
func (c *Calculator) countPercent(ctx context.Context, orgID uint, section string, count func(context.Context, uint) (int64, error), threshold int64) int {
	n, err := count(ctx, orgID)
	if err != nil {
		c.warn(section, orgID, err)
		return 0
	}
	switch {
	case n >= threshold:
		return 100
	case n >= 1:
		return 50
	default:
		return 0
	}
}

func (c *Calculator) controlsPercent(ctx context.Context, orgID uint) int {
	n, err := c.store.CountEvaluatedControls(ctx, orgID)
	if err != nil {
		c.warn("controls", orgID, err)
		return 0
	}
	return int(math.Round(float64(n) / float64(catalog.Count) * 100))
}

func (c *Calculator) soaPercent(ctx context.Context, orgID uint) int {
	exported, err := c.store.HasActivity(ctx, orgID, "soa", "export")
	if err != nil {
		c.warn("soa", orgID, err)
		return 0
	}
	if exported {
		return 100
	}
	return 0
}

func (c *Calculator) auditsPercent(ctx context.Context, orgID uint) int {
	has, err := c.store.HasAudits(ctx, orgID)
	if err != nil {
		c.warn("audits", orgID, err)
		return 0
	}
	if has {
		return 100
	}
	return 0
}

func (c *Calculator) warn(section string, orgID uint, err error) {
	if err == nil {
		return
	}
	c.log.Warnw("progress section query failed, treating as empty",
		"section", section,
		"organization_id", orgID,
		"error", err)
}
