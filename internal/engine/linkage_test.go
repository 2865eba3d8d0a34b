package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conformo/internal/models"
)

func newTestLinkage(store *fakeStore) *Linkage {
	return NewLinkage(store, &fakeSuggestionStore{}, zap.NewNop().Sugar())
}

func testMeta() AuditMeta {
	return AuditMeta{
		OrganizationID: 1,
		AuditCode:      "AUD-20260115090000-AB12CD34",
		AuditorName:    "Mario Rossi",
		AuditDate:      time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

func soaFixture(ref string, mutate func(*models.SoAItem)) *models.SoAItem {
	item := &models.SoAItem{
		OrganizationID:       1,
		ControlReference:     ref,
		Applicability:        models.Applicable,
		ImplementationStatus: models.ImplementationImplemented,
		ComplianceScore:      50,
	}
	if mutate != nil {
		mutate(item)
	}
	return item
}

func riskFixture(code string, score int, controls []string) *models.Risk {
	return &models.Risk{
		OrganizationID:      1,
		Code:                code,
		Name:                "Perdita dati",
		InherentProbability: "Alta",
		InherentImpact:      "Alta",
		InherentScore:       score,
		InherentLevel:       "Alto",
		VerificationStatus:  models.VerificationNotVerified,
		Status:              models.RiskIdentified,
		RelatedControls:     controls,
	}
}

func TestApplyConforming(t *testing.T) {
	ctx := context.Background()

	t.Run("full cascade on a verified control", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.8.13"] = soaFixture("A.8.13", func(s *models.SoAItem) {
			s.RelatedRisks = []string{"RSK-1"}
		})
		fs.risks["RSK-1"] = riskFixture("RSK-1", 16, []string{"A.8.13"})
		fs.controls["A.8.13"] = &models.Control{
			OrganizationID: 1,
			ControlID:      "A.8.13",
			Title:          "Information backup",
			Domain:         "A.8",
			Status:         models.ControlPartial,
		}

		l := newTestLinkage(fs)
		meta := testMeta()
		sum := l.Apply(ctx, 10, meta, []ChecklistInput{{
			ControlReference: "A.8.13",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		assert.Equal(t, 1, sum.ControlsUpdated)
		assert.Equal(t, 1, sum.RisksUpdated)
		require.Len(t, sum.Items, 1)
		assert.Empty(t, sum.Items[0].Error)
		assert.False(t, sum.Items[0].Skipped)

		soa := fs.soa["A.8.13"]
		assert.Equal(t, models.ImplementationVerified, soa.ImplementationStatus)
		assert.Equal(t, 100, soa.ComplianceScore)
		assert.Equal(t, meta.AuditorName, soa.VerifiedBy)
		require.NotNil(t, soa.LastAuditDate)
		assert.Equal(t, meta.AuditDate, *soa.LastAuditDate)
		require.NotNil(t, soa.NextReviewDate)
		assert.Equal(t, meta.AuditDate.AddDate(1, 0, 0), *soa.NextReviewDate)
		require.Len(t, soa.EvidenceDocuments, 1)
		assert.Equal(t, "audit_report", soa.EvidenceDocuments[0].Type)
		assert.Equal(t, meta.AuditCode, soa.EvidenceDocuments[0].AuditCode)

		ctrl := fs.controls["A.8.13"]
		assert.Equal(t, models.ControlImplemented, ctrl.Status)
		require.Len(t, ctrl.AuditHistory, 1)
		assert.Equal(t, uint(10), ctrl.AuditHistory[0].AuditID)

		r := fs.risks["RSK-1"]
		require.NotNil(t, r.ResidualScore)
		assert.Equal(t, 6, *r.ResidualScore) // floor(16 * 0.4)
		assert.Equal(t, models.VerificationVerified, r.VerificationStatus)
		require.NotNil(t, r.VerificationAuditID)
		assert.Equal(t, uint(10), *r.VerificationAuditID)
		assert.Contains(t, r.Notes, meta.AuditCode)
	})

	t.Run("residual score never drops below one", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.5.1"] = soaFixture("A.5.1", func(s *models.SoAItem) {
			s.RelatedRisks = []string{"RSK-LOW"}
		})
		fs.risks["RSK-LOW"] = riskFixture("RSK-LOW", 2, []string{"A.5.1"})

		l := newTestLinkage(fs)
		l.Apply(ctx, 11, testMeta(), []ChecklistInput{{
			ControlReference: "A.5.1",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		require.NotNil(t, fs.risks["RSK-LOW"].ResidualScore)
		assert.Equal(t, 1, *fs.risks["RSK-LOW"].ResidualScore)
	})

	t.Run("residual of a critical risk", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.8.6"] = soaFixture("A.8.6", func(s *models.SoAItem) {
			s.RelatedRisks = []string{"RSK-HI"}
		})
		fs.risks["RSK-HI"] = riskFixture("RSK-HI", 20, []string{"A.8.6"})

		l := newTestLinkage(fs)
		l.Apply(ctx, 12, testMeta(), []ChecklistInput{{
			ControlReference: "A.8.6",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		require.NotNil(t, fs.risks["RSK-HI"].ResidualScore)
		assert.Equal(t, 8, *fs.risks["RSK-HI"].ResidualScore)
	})

	t.Run("risk stays unverified while any related control is not", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.8.13"] = soaFixture("A.8.13", func(s *models.SoAItem) {
			s.RelatedRisks = []string{"RSK-2"}
		})
		fs.soa["A.8.14"] = soaFixture("A.8.14", nil) // implemented, not verified
		fs.risks["RSK-2"] = riskFixture("RSK-2", 16, []string{"A.8.13", "A.8.14"})

		l := newTestLinkage(fs)
		sum := l.Apply(ctx, 13, testMeta(), []ChecklistInput{{
			ControlReference: "A.8.13",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		assert.Equal(t, 1, sum.ControlsUpdated)
		assert.Zero(t, sum.RisksUpdated)
		r := fs.risks["RSK-2"]
		assert.Nil(t, r.ResidualScore)
		assert.Equal(t, models.VerificationNotVerified, r.VerificationStatus)
	})

	t.Run("risk without related controls is never reduced", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.8.13"] = soaFixture("A.8.13", func(s *models.SoAItem) {
			s.RelatedRisks = []string{"RSK-3"}
		})
		fs.risks["RSK-3"] = riskFixture("RSK-3", 16, nil)

		l := newTestLinkage(fs)
		sum := l.Apply(ctx, 14, testMeta(), []ChecklistInput{{
			ControlReference: "A.8.13",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		assert.Zero(t, sum.RisksUpdated)
		assert.Nil(t, fs.risks["RSK-3"].ResidualScore)
	})

	t.Run("closes NCs awaiting verification, leaves open ones", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.5.15"] = soaFixture("A.5.15", nil)
		fs.ncs = []*models.NonConformity{
			{OrganizationID: 1, Code: "NC-1", RelatedControl: "A.5.15", Status: models.NCVerification, Severity: models.NCMajor},
			{OrganizationID: 1, Code: "NC-2", RelatedControl: "A.5.15", Status: models.NCOpen, Severity: models.NCMajor},
		}

		l := newTestLinkage(fs)
		meta := testMeta()
		sum := l.Apply(ctx, 15, meta, []ChecklistInput{{
			ControlReference: "A.5.15",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		assert.Equal(t, 1, sum.NCsClosed)

		byCode := make(map[string]*models.NonConformity)
		for _, nc := range fs.ncs {
			byCode[nc.Code] = nc
		}
		closed := byCode["NC-1"]
		assert.Equal(t, models.NCClosed, closed.Status)
		assert.True(t, closed.EffectivenessVerified)
		require.NotNil(t, closed.ClosedAt)
		assert.Contains(t, closed.ClosureNotes, meta.AuditCode)

		assert.Equal(t, models.NCOpen, byCode["NC-2"].Status)
	})

	t.Run("missing SoA item is tolerated", func(t *testing.T) {
		fs := newFakeStore()
		l := newTestLinkage(fs)

		sum := l.Apply(ctx, 16, testMeta(), []ChecklistInput{{
			ControlReference: "A.6.1",
			Result:           models.ResultConforming,
			UpdateLinked:     true,
		}})

		assert.Zero(t, sum.ControlsUpdated)
		require.Len(t, sum.Items, 1)
		assert.Empty(t, sum.Items[0].Error)
	})
}

func TestApplyNonConforming(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a major NC and demotes the SoA item", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.8.24"] = soaFixture("A.8.24", func(s *models.SoAItem) {
			s.ImplementationStatus = models.ImplementationVerified
			s.ComplianceScore = 100
		})

		l := newTestLinkage(fs)
		meta := testMeta()
		sum := l.Apply(ctx, 20, meta, []ChecklistInput{{
			ControlReference: "A.8.24",
			ControlTitle:     "Use of cryptography",
			Result:           models.ResultNonConforming,
			UpdateLinked:     true,
			AutoCreateNC:     true,
			AuditNotes:       "Chiavi non ruotate da 18 mesi",
		}})

		assert.Equal(t, 1, sum.NCsCreated)
		require.Len(t, fs.createdNCs, 1)

		nc := fs.createdNCs[0]
		assert.Equal(t, "Non conformità - Use of cryptography", nc.Title)
		assert.Contains(t, nc.Description, "Chiavi non ruotate da 18 mesi")
		assert.Equal(t, models.NCMajor, nc.Severity)
		assert.Equal(t, models.NCOpen, nc.Status)
		assert.Equal(t, "audit", nc.Source)
		require.NotNil(t, nc.SourceID)
		assert.Equal(t, uint(20), *nc.SourceID)
		assert.Equal(t, "A.8.24", nc.RelatedControl)
		assert.Equal(t, "internal_audit", nc.DetectionMethod)
		assert.Contains(t, nc.Code, "NC-")

		soa := fs.soa["A.8.24"]
		assert.Equal(t, models.ImplementationImplemented, soa.ImplementationStatus)
		assert.Equal(t, 50, soa.ComplianceScore)
		assert.Equal(t, string(models.ResultNonConforming), soa.LastAuditResult)
	})

	t.Run("empty auditor notes get a placeholder", func(t *testing.T) {
		fs := newFakeStore()
		l := newTestLinkage(fs)

		l.Apply(ctx, 21, testMeta(), []ChecklistInput{{
			ControlReference: "A.6.3",
			Result:           models.ResultNonConforming,
			UpdateLinked:     true,
			AutoCreateNC:     true,
		}})

		require.Len(t, fs.createdNCs, 1)
		assert.Contains(t, fs.createdNCs[0].Description, "Nessuna nota dell'auditor")
		// title falls back to the control reference
		assert.Equal(t, "Non conformità - A.6.3", fs.createdNCs[0].Title)
	})

	t.Run("without auto_create_nc nothing propagates", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.6.3"] = soaFixture("A.6.3", nil)

		l := newTestLinkage(fs)
		sum := l.Apply(ctx, 22, testMeta(), []ChecklistInput{{
			ControlReference: "A.6.3",
			Result:           models.ResultNonConforming,
			UpdateLinked:     true,
		}})

		assert.Zero(t, sum.NCsCreated)
		require.Len(t, sum.Items, 1)
		assert.True(t, sum.Items[0].Skipped)
		assert.Equal(t, "nothing to propagate", sum.Items[0].SkipReason)
		assert.Equal(t, 50, fs.soa["A.6.3"].ComplianceScore)
	})
}

func TestApplyItemBoundaries(t *testing.T) {
	ctx := context.Background()

	t.Run("update_linked disabled skips the item", func(t *testing.T) {
		fs := newFakeStore()
		fs.soa["A.5.1"] = soaFixture("A.5.1", nil)

		l := newTestLinkage(fs)
		sum := l.Apply(ctx, 30, testMeta(), []ChecklistInput{{
			ControlReference: "A.5.1",
			Result:           models.ResultConforming,
			UpdateLinked:     false,
		}})

		assert.Zero(t, sum.ControlsUpdated)
		require.Len(t, sum.Items, 1)
		assert.True(t, sum.Items[0].Skipped)
		assert.Equal(t, "update_linked disabled", sum.Items[0].SkipReason)
		assert.Equal(t, models.ImplementationImplemented, fs.soa["A.5.1"].ImplementationStatus)
	})

	t.Run("one failing item does not stop the rest", func(t *testing.T) {
		fs := newFakeStore()
		fs.soaErr["A.5.1"] = assert.AnError
		fs.soa["A.5.2"] = soaFixture("A.5.2", nil)

		l := newTestLinkage(fs)
		sum := l.Apply(ctx, 31, testMeta(), []ChecklistInput{
			{ControlReference: "A.5.1", Result: models.ResultConforming, UpdateLinked: true},
			{ControlReference: "A.5.2", Result: models.ResultConforming, UpdateLinked: true},
		})

		require.Len(t, sum.Items, 2)
		assert.NotEmpty(t, sum.Items[0].Error)
		assert.Empty(t, sum.Items[1].Error)
		assert.Equal(t, 1, sum.ControlsUpdated)
		assert.Equal(t, models.ImplementationVerified, fs.soa["A.5.2"].ImplementationStatus)
	})
}
