package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"conformo/internal/models"
	"conformo/internal/risk"
)

// Generator derives candidate risks from an asset's criticality and CIA
// attributes. Only critical assets (criticality score >= 4) produce
// candidates; everything else is a no-op.
type Generator struct {
	store GeneratorStore
	log   *zap.SugaredLogger
}

func NewGenerator(store GeneratorStore, log *zap.SugaredLogger) *Generator {
	return &Generator{store: store, log: log}
}

// GenerateRisksForAsset builds and persists up to four candidate risks for
// the asset. Returns the created risks; a failed batch insert creates
// nothing and propagates the error.
func (g *Generator) GenerateRisksForAsset(ctx context.Context, asset *models.Asset) ([]models.Risk, error) {
	if asset.OrganizationID == 0 {
		return nil, nil
	}

	critScore, err := risk.CriticalityScore(string(asset.Criticality))
	if err != nil {
		return nil, fmt.Errorf("asset %d: %w", asset.ID, err)
	}
	if critScore < 4 {
		return nil, nil
	}

	confScore, err := risk.ConfidentialityScore(string(asset.Confidentiality))
	if err != nil {
		return nil, fmt.Errorf("asset %d: %w", asset.ID, err)
	}

	var risks []models.Risk

	if asset.IntegrityRequired {
		risks = append(risks, g.candidate(asset, candidateSpec{
			name:        fmt.Sprintf("Perdita o danneggiamento - %s", asset.Name),
			description: lossNarrative(asset.AssetType),
			probability: critScore,
			impact:      critScore,
			suggested:   []string{"A.5.29", "A.5.30", "A.8.13", "A.8.11"},
		}))
	}

	if confScore >= 4 {
		prob := confScore + 1
		if prob > 5 {
			prob = 5
		}
		risks = append(risks, g.candidate(asset, candidateSpec{
			name:        fmt.Sprintf("Accesso non autorizzato - %s", asset.Name),
			description: fmt.Sprintf("Accesso non autorizzato a informazioni classificate %s con possibile divulgazione", asset.Confidentiality),
			probability: prob,
			impact:      critScore,
			suggested:   []string{"A.5.15", "A.5.16", "A.5.17", "A.5.18", "A.8.2", "A.8.3", "A.8.5"},
		}))
	}

	if asset.AvailabilityRequired {
		risks = append(risks, g.candidate(asset, candidateSpec{
			name:        fmt.Sprintf("Indisponibilità - %s", asset.Name),
			description: "Interruzione prolungata del servizio con impatto sulla continuità operativa",
			probability: critScore,
			impact:      critScore,
			suggested:   []string{"A.5.29", "A.5.30", "A.8.6", "A.8.14", "A.8.20"},
		}))
	}

	if asset.AssetType == models.AssetHardware {
		risks = append(risks, g.candidate(asset, candidateSpec{
			name:        fmt.Sprintf("Danno fisico - %s", asset.Name),
			description: "Furto, danneggiamento fisico o evento ambientale sull'apparato",
			probability: 2, // physical events stay low-probability regardless of criticality
			impact:      critScore,
			suggested:   []string{"A.7.1", "A.7.2", "A.7.4", "A.7.7", "A.7.8"},
		}))
	}

	if len(risks) == 0 {
		return nil, nil
	}

	if err := g.store.InsertRisks(ctx, risks); err != nil {
		return nil, fmt.Errorf("insert generated risks for asset %d: %w", asset.ID, err)
	}

	g.log.Infow("generated risks for asset",
		"asset_id", asset.ID,
		"organization_id", asset.OrganizationID,
		"count", len(risks))

	return risks, nil
}

// CheckAndGenerateRisksForAsset is the idempotent entry point: if any
// auto-generated risk already exists for the asset, nothing is generated.
// Returns the number of risks created.
func (g *Generator) CheckAndGenerateRisksForAsset(ctx context.Context, assetID uint) (int, error) {
	asset, err := g.store.GetAsset(ctx, assetID)
	if err != nil {
		return 0, fmt.Errorf("load asset %d: %w", assetID, err)
	}
	if asset == nil {
		return 0, fmt.Errorf("asset %d not found", assetID)
	}

	existing, err := g.store.CountAutoGeneratedRisks(ctx, asset.OrganizationID, asset.ID)
	if err != nil {
		return 0, fmt.Errorf("count generated risks for asset %d: %w", assetID, err)
	}
	if existing > 0 {
		return 0, nil
	}

	risks, err := g.GenerateRisksForAsset(ctx, asset)
	if err != nil {
		return 0, err
	}
	return len(risks), nil
}

type candidateSpec struct {
	name        string
	description string
	probability int // 1-5 ordinal
	impact      int // 1-5 ordinal
	suggested   []string
}

func (g *Generator) candidate(asset *models.Asset, spec candidateSpec) models.Risk {
	assetID := asset.ID
	return models.Risk{
		OrganizationID:      asset.OrganizationID,
		AssetID:             &assetID,
		Code:                NewRiskCode(),
		Name:                spec.name,
		Description:         spec.description,
		InherentProbability: risk.MatrixLabelForScore(spec.probability),
		InherentImpact:      risk.MatrixLabelForScore(spec.impact),
		InherentScore:       spec.probability * spec.impact,
		InherentLevel:       string(risk.CategoryForScore(spec.probability * spec.impact)),
		VerificationStatus:  models.VerificationNotVerified,
		Status:              models.RiskIdentified,
		SuggestedControls:   spec.suggested,
		AutoGenerated:       true,
	}
}

func lossNarrative(t models.AssetType) string {
	switch t {
	case models.AssetData:
		return "Perdita o corruzione di dati critici a seguito di guasti, errori o attacchi"
	case models.AssetHardware:
		return "Guasto o danneggiamento dell'apparato con perdita delle informazioni trattate"
	case models.AssetSoftware:
		return "Malfunzionamento o corruzione del software con perdita di integrità dei dati"
	default:
		return "Perdita o compromissione dell'asset con impatto sull'integrità delle informazioni"
	}
}
