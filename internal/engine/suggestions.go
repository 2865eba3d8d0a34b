package engine

import (
	"context"
	"fmt"
	"time"

	"conformo/internal/models"
)

const suggestionLimit = 10

// Suggestions are three prioritized lists helping an auditor choose what to
// audit next.
type Suggestions struct {
	ToVerify   []models.SoAItem       `json:"to_verify"`    // implemented but not audited in the last year
	HighRisks  []models.Risk          `json:"high_risks"`   // unverified, inherent score >= 12
	NCToVerify []models.NonConformity `json:"nc_to_verify"` // awaiting effectiveness verification
}

// SmartSuggestions composes read-only queries; it mutates nothing.
func (l *Linkage) SmartSuggestions(ctx context.Context, orgID uint) (*Suggestions, error) {
	cutoff := time.Now().AddDate(-1, 0, 0)

	toVerify, err := l.sugg.ListSoAItemsToVerify(ctx, orgID, cutoff, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("list SoA items to verify: %w", err)
	}

	highRisks, err := l.sugg.ListUnverifiedHighRisks(ctx, orgID, 12, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("list high risks: %w", err)
	}

	ncs, err := l.sugg.ListNonConformitiesByStatus(ctx, orgID, models.NCVerification, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("list NCs to verify: %w", err)
	}

	return &Suggestions{ToVerify: toVerify, HighRisks: highRisks, NCToVerify: ncs}, nil
}
