package engine

import (
	"context"
	"time"

	"conformo/internal/models"
)

// The engine never talks to gorm directly: each component accepts the
// narrow store interface it needs, and internal/store provides the single
// Postgres-backed implementation. Lookups for single records return
// (nil, nil) when the record does not exist; absence is tolerated, not an
// error.

type GeneratorStore interface {
	GetAsset(ctx context.Context, id uint) (*models.Asset, error)
	CountAutoGeneratedRisks(ctx context.Context, orgID, assetID uint) (int64, error)
	// InsertRisks persists the batch atomically: either every risk is
	// created or none is.
	InsertRisks(ctx context.Context, risks []models.Risk) error
}

type LinkageStore interface {
	GetSoAItem(ctx context.Context, orgID uint, controlRef string) (*models.SoAItem, error)
	SaveSoAItem(ctx context.Context, item *models.SoAItem) error

	GetRiskByCode(ctx context.Context, orgID uint, code string) (*models.Risk, error)
	SaveRisk(ctx context.Context, r *models.Risk) error

	GetControl(ctx context.Context, orgID uint, controlID string) (*models.Control, error)
	SaveControl(ctx context.Context, c *models.Control) error

	ListNonConformitiesByControl(ctx context.Context, orgID uint, controlRef string, status models.NCStatus) ([]models.NonConformity, error)
	SaveNonConformity(ctx context.Context, nc *models.NonConformity) error
	InsertNonConformity(ctx context.Context, nc *models.NonConformity) error
}

type SuggestionStore interface {
	ListSoAItemsToVerify(ctx context.Context, orgID uint, auditedBefore time.Time, limit int) ([]models.SoAItem, error)
	ListUnverifiedHighRisks(ctx context.Context, orgID uint, minScore, limit int) ([]models.Risk, error)
	ListNonConformitiesByStatus(ctx context.Context, orgID uint, status models.NCStatus, limit int) ([]models.NonConformity, error)
}

type ProgressStore interface {
	GetOrganization(ctx context.Context, orgID uint) (*models.Organization, error)
	CountAssets(ctx context.Context, orgID uint) (int64, error)
	CountRisks(ctx context.Context, orgID uint) (int64, error)
	CountPolicies(ctx context.Context, orgID uint) (int64, error)
	// CountEvaluatedControls counts controls whose status has moved past
	// not_implemented (any of partial, implemented, not_applicable).
	CountEvaluatedControls(ctx context.Context, orgID uint) (int64, error)
	HasActivity(ctx context.Context, orgID uint, entity, action string) (bool, error)
	HasAudits(ctx context.Context, orgID uint) (bool, error)
}
