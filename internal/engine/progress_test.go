package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conformo/internal/models"
)

func newTestCalculator(store *fakeProgressStore) *Calculator {
	return NewCalculator(store, zap.NewNop().Sugar())
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty organization scores zero", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org: &models.Organization{Name: "Acme S.p.A."},
		})

		report := calc.Calculate(ctx, 1)
		assert.Zero(t, report.Overall)
		for section, pct := range report.Sections {
			assert.Zero(t, pct, section)
		}
	})

	t.Run("complete organization scores one hundred", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org:       &models.Organization{Name: "Acme S.p.A.", ISMSScope: "Sede principale"},
			assets:    5,
			risks:     3,
			policies:  3,
			evaluated: 93,
			exported:  true,
			audited:   true,
		})

		report := calc.Calculate(ctx, 1)
		assert.Equal(t, 100, report.Overall)
		require.Len(t, report.Sections, 8)
		for section, pct := range report.Sections {
			assert.Equal(t, 100, pct, section)
		}
	})

	t.Run("count sections band at half marks", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org:      &models.Organization{Name: "Acme S.p.A."},
			assets:   1,
			risks:    2,
			policies: 3,
		})

		report := calc.Calculate(ctx, 1)
		assert.Equal(t, 50, report.Sections["assets"])
		assert.Equal(t, 50, report.Sections["risks"])
		assert.Equal(t, 100, report.Sections["policies"])
	})

	t.Run("controls percentage rounds against the full catalog", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org:       &models.Organization{Name: "Acme S.p.A."},
			evaluated: 46,
		})

		report := calc.Calculate(ctx, 1)
		assert.Equal(t, 49, report.Sections["controls"]) // round(46/93*100)
	})

	t.Run("documentation mirrors soa", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org:      &models.Organization{Name: "Acme S.p.A."},
			exported: true,
		})

		report := calc.Calculate(ctx, 1)
		assert.Equal(t, 100, report.Sections["soa"])
		assert.Equal(t, report.Sections["soa"], report.Sections["documentation"])
	})

	t.Run("overall rounds the section mean", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org: &models.Organization{Name: "Acme S.p.A.", ISMSScope: "Sede principale"},
		})

		report := calc.Calculate(ctx, 1)
		assert.Equal(t, 100, report.Sections["organization"])
		assert.Equal(t, 13, report.Overall) // round(100/8)
	})

	t.Run("section query errors degrade to zero", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{
			org:       &models.Organization{Name: "Acme S.p.A.", ISMSScope: "Sede principale"},
			assets:    5,
			assetsErr: assert.AnError,
			evaluated: 93,
		})

		report := calc.Calculate(ctx, 1)
		assert.Zero(t, report.Sections["assets"])
		assert.Equal(t, 100, report.Sections["organization"])
		assert.Equal(t, 100, report.Sections["controls"])
	})

	t.Run("missing organization", func(t *testing.T) {
		calc := newTestCalculator(&fakeProgressStore{})

		report := calc.Calculate(ctx, 99)
		assert.Zero(t, report.Sections["organization"])
	})
}
