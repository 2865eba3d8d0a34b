package engine

import (
	"context"
	"time"

	"conformo/internal/models"
)

// fakeStore is an in-memory GeneratorStore and LinkageStore. Single-record
// lookups return (nil, nil) for missing rows, matching the store contract.
type fakeStore struct {
	assets    map[uint]*models.Asset
	inserted  []models.Risk
	insertErr error

	soa      map[string]*models.SoAItem // by control reference
	risks    map[string]*models.Risk    // by code
	controls map[string]*models.Control // by control id
	ncs      []*models.NonConformity

	createdNCs []*models.NonConformity
	soaErr     map[string]error // per-reference injection for GetSoAItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assets:   make(map[uint]*models.Asset),
		soa:      make(map[string]*models.SoAItem),
		risks:    make(map[string]*models.Risk),
		controls: make(map[string]*models.Control),
		soaErr:   make(map[string]error),
	}
}

func (f *fakeStore) GetAsset(_ context.Context, id uint) (*models.Asset, error) {
	return f.assets[id], nil
}

func (f *fakeStore) CountAutoGeneratedRisks(_ context.Context, orgID, assetID uint) (int64, error) {
	var n int64
	for _, r := range f.inserted {
		if r.OrganizationID == orgID && r.AssetID != nil && *r.AssetID == assetID && r.AutoGenerated {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) InsertRisks(_ context.Context, risks []models.Risk) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, risks...)
	return nil
}

func (f *fakeStore) GetSoAItem(_ context.Context, _ uint, controlRef string) (*models.SoAItem, error) {
	if err := f.soaErr[controlRef]; err != nil {
		return nil, err
	}
	return f.soa[controlRef], nil
}

func (f *fakeStore) SaveSoAItem(_ context.Context, item *models.SoAItem) error {
	f.soa[item.ControlReference] = item
	return nil
}

func (f *fakeStore) GetRiskByCode(_ context.Context, _ uint, code string) (*models.Risk, error) {
	return f.risks[code], nil
}

func (f *fakeStore) SaveRisk(_ context.Context, r *models.Risk) error {
	f.risks[r.Code] = r
	return nil
}

func (f *fakeStore) GetControl(_ context.Context, _ uint, controlID string) (*models.Control, error) {
	return f.controls[controlID], nil
}

func (f *fakeStore) SaveControl(_ context.Context, c *models.Control) error {
	f.controls[c.ControlID] = c
	return nil
}

func (f *fakeStore) ListNonConformitiesByControl(_ context.Context, _ uint, controlRef string, status models.NCStatus) ([]models.NonConformity, error) {
	var out []models.NonConformity
	for _, nc := range f.ncs {
		if nc.RelatedControl == controlRef && nc.Status == status {
			out = append(out, *nc)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveNonConformity(_ context.Context, nc *models.NonConformity) error {
	for i, existing := range f.ncs {
		if existing.Code == nc.Code {
			saved := *nc
			f.ncs[i] = &saved
			return nil
		}
	}
	saved := *nc
	f.ncs = append(f.ncs, &saved)
	return nil
}

func (f *fakeStore) InsertNonConformity(_ context.Context, nc *models.NonConformity) error {
	saved := *nc
	f.ncs = append(f.ncs, &saved)
	f.createdNCs = append(f.createdNCs, &saved)
	return nil
}

// fakeSuggestionStore returns canned lists.
type fakeSuggestionStore struct {
	toVerify  []models.SoAItem
	highRisks []models.Risk
	ncs       []models.NonConformity

	toVerifyErr error
}

func (f *fakeSuggestionStore) ListSoAItemsToVerify(_ context.Context, _ uint, _ time.Time, limit int) ([]models.SoAItem, error) {
	if f.toVerifyErr != nil {
		return nil, f.toVerifyErr
	}
	if len(f.toVerify) > limit {
		return f.toVerify[:limit], nil
	}
	return f.toVerify, nil
}

func (f *fakeSuggestionStore) ListUnverifiedHighRisks(_ context.Context, _ uint, minScore, limit int) ([]models.Risk, error) {
	var out []models.Risk
	for _, r := range f.highRisks {
		if r.InherentScore >= minScore {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSuggestionStore) ListNonConformitiesByStatus(_ context.Context, _ uint, status models.NCStatus, limit int) ([]models.NonConformity, error) {
	var out []models.NonConformity
	for _, nc := range f.ncs {
		if nc.Status == status {
			out = append(out, nc)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeProgressStore exposes one field per section query plus per-query
// error injection.
type fakeProgressStore struct {
	org       *models.Organization
	assets    int64
	risks     int64
	policies  int64
	evaluated int64
	exported  bool
	audited   bool

	orgErr       error
	assetsErr    error
	evaluatedErr error
}

func (f *fakeProgressStore) GetOrganization(_ context.Context, _ uint) (*models.Organization, error) {
	return f.org, f.orgErr
}

func (f *fakeProgressStore) CountAssets(_ context.Context, _ uint) (int64, error) {
	return f.assets, f.assetsErr
}

func (f *fakeProgressStore) CountRisks(_ context.Context, _ uint) (int64, error) {
	return f.risks, nil
}

func (f *fakeProgressStore) CountPolicies(_ context.Context, _ uint) (int64, error) {
	return f.policies, nil
}

func (f *fakeProgressStore) CountEvaluatedControls(_ context.Context, _ uint) (int64, error) {
	return f.evaluated, f.evaluatedErr
}

func (f *fakeProgressStore) HasActivity(_ context.Context, _ uint, _, _ string) (bool, error) {
	return f.exported, nil
}

func (f *fakeProgressStore) HasAudits(_ context.Context, _ uint) (bool, error) {
	return f.audited, nil
}
