// Package store is the Postgres-backed implementation of the engine's
// store interfaces.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"conformo/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CountAutoGeneratedRisks(ctx context.Context, orgID, assetID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Risk{}).
		Where("organization_id = ? AND asset_id = ? AND auto_generated = ?", orgID, assetID, true).
		Count(&count).Error
	return count, err
}

func (s *Store) InsertRisks(ctx context.Context, risks []models.Risk) error {
	// single Create call: gorm batches the insert in one statement, so a
	// failure creates nothing
	return s.db.WithContext(ctx).Create(&risks).Error
}

func (s *Store) GetSoAItem(ctx context.Context, orgID uint, controlRef string) (*models.SoAItem, error) {
	var item models.SoAItem
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND control_reference = ?", orgID, controlRef).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveSoAItem(ctx context.Context, item *models.SoAItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetRiskByCode(ctx context.Context, orgID uint, code string) (*models.Risk, error) {
	var r models.Risk
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND code = ?", orgID, code).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) SaveRisk(ctx context.Context, r *models.Risk) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *Store) GetControl(ctx context.Context, orgID uint, controlID string) (*models.Control, error) {
	var c models.Control
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND control_id = ?", orgID, controlID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) SaveControl(ctx context.Context, c *models.Control) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *Store) ListNonConformitiesByControl(ctx context.Context, orgID uint, controlRef string, status models.NCStatus) ([]models.NonConformity, error) {
	var ncs []models.NonConformity
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND related_control = ? AND status = ?", orgID, controlRef, status).
		Find(&ncs).Error
	return ncs, err
}

func (s *Store) SaveNonConformity(ctx context.Context, nc *models.NonConformity) error {
	return s.db.WithContext(ctx).Save(nc).Error
}

func (s *Store) InsertNonConformity(ctx context.Context, nc *models.NonConformity) error {
	return s.db.WithContext(ctx).Create(nc).Error
}

func (s *Store) ListSoAItemsToVerify(ctx context.Context, orgID uint, auditedBefore time.Time, limit int) ([]models.SoAItem, error) {
	var items []models.SoAItem
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND applicability = ? AND implementation_status = ?",
			orgID, models.Applicable, models.ImplementationImplemented).
		Where("last_audit_date IS NULL OR last_audit_date < ?", auditedBefore).
		Order("implementation_date asc").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (s *Store) ListUnverifiedHighRisks(ctx context.Context, orgID uint, minScore, limit int) ([]models.Risk, error) {
	var risks []models.Risk
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND inherent_score >= ? AND verification_status = ?",
			orgID, minScore, models.VerificationNotVerified).
		Order("inherent_score desc").
		Limit(limit).
		Find(&risks).Error
	return risks, err
}

func (s *Store) ListNonConformitiesByStatus(ctx context.Context, orgID uint, status models.NCStatus, limit int) ([]models.NonConformity, error) {
	var ncs []models.NonConformity
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND status = ?", orgID, status).
		Order("created_at desc").
		Limit(limit).
		Find(&ncs).Error
	return ncs, err
}

func (s *Store) GetOrganization(ctx context.Context, orgID uint) (*models.Organization, error) {
	var org models.Organization
	err := s.db.WithContext(ctx).First(&org, orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *Store) CountAssets(ctx context.Context, orgID uint) (int64, error) {
	return s.countForOrg(ctx, &models.Asset{}, orgID)
}

func (s *Store) CountRisks(ctx context.Context, orgID uint) (int64, error) {
	return s.countForOrg(ctx, &models.Risk{}, orgID)
}

func (s *Store) CountPolicies(ctx context.Context, orgID uint) (int64, error) {
	return s.countForOrg(ctx, &models.Policy{}, orgID)
}

func (s *Store) countForOrg(ctx context.Context, model interface{}, orgID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).
		Where("organization_id = ?", orgID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountEvaluatedControls(ctx context.Context, orgID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Control{}).
		Where("organization_id = ? AND status <> ?", orgID, models.ControlNotImplemented).
		Count(&count).Error
	return count, err
}

func (s *Store) HasActivity(ctx context.Context, orgID uint, entity, action string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ActivityLog{}).
		Where("organization_id = ? AND entity = ? AND action = ?", orgID, entity, action).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) HasAudits(ctx context.Context, orgID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Audit{}).
		Where("organization_id = ?", orgID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
