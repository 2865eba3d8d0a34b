package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"conformo/internal/models"
)

// Linkage propagates a completed audit's checklist results into the four
// linked record types: control status, SoA entries, risk residual scores
// and non-conformity lifecycle.
type Linkage struct {
	store LinkageStore
	sugg  SuggestionStore
	log   *zap.SugaredLogger
}

func NewLinkage(store LinkageStore, sugg SuggestionStore, log *zap.SugaredLogger) *Linkage {
	return &Linkage{store: store, sugg: sugg, log: log}
}

// AuditMeta carries the audit attributes the cascade stamps onto linked
// records.
type AuditMeta struct {
	OrganizationID uint
	AuditCode      string
	AuditorName    string
	AuditDate      time.Time
}

// ChecklistInput is one control's finding, the unit of work of Apply.
type ChecklistInput struct {
	ControlReference string
	ControlTitle     string
	Result           models.ChecklistResult
	UpdateLinked     bool
	AutoCreateNC     bool
	AuditNotes       string
}

// ItemOutcome reports what happened to one checklist item. Failures are
// carried as values so callers can surface them, not only read logs.
type ItemOutcome struct {
	ControlReference string `json:"control_reference"`
	Skipped          bool   `json:"skipped"`
	SkipReason       string `json:"skip_reason,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Summary aggregates the counters the UI turns into a one-line notification.
type Summary struct {
	ControlsUpdated int           `json:"controls_updated"`
	RisksUpdated    int           `json:"risks_updated"`
	NCsClosed       int           `json:"ncs_closed"`
	NCsCreated      int           `json:"ncs_created"`
	Items           []ItemOutcome `json:"items"`
}

// Apply processes the checklist items strictly in the given order. Each item
// runs in its own failure boundary: an error in one control's cascade is
// recorded and the loop continues, so the counters reflect only applied
// updates. There is no cross-item rollback, and no optimistic locking
// against concurrent writers: last write wins, matching how the rest of the
// application mutates these rows.
func (l *Linkage) Apply(ctx context.Context, auditID uint, meta AuditMeta, items []ChecklistInput) Summary {
	var sum Summary

	for _, item := range items {
		outcome := ItemOutcome{ControlReference: item.ControlReference}

		switch {
		case !item.UpdateLinked:
			outcome.Skipped = true
			outcome.SkipReason = "update_linked disabled"
		case item.Result == models.ResultConforming:
			if err := l.applyConforming(ctx, auditID, meta, item, &sum); err != nil {
				outcome.Error = err.Error()
				l.log.Errorw("audit linkage failed for control",
					"audit_id", auditID,
					"control", item.ControlReference,
					"error", err)
			}
		case item.Result == models.ResultNonConforming && item.AutoCreateNC:
			if err := l.applyNonConforming(ctx, auditID, meta, item, &sum); err != nil {
				outcome.Error = err.Error()
				l.log.Errorw("audit linkage failed for control",
					"audit_id", auditID,
					"control", item.ControlReference,
					"error", err)
			}
		default:
			outcome.Skipped = true
			outcome.SkipReason = "nothing to propagate"
		}

		sum.Items = append(sum.Items, outcome)
	}

	return sum
}

// applyConforming runs the verified-control cascade: SoA promotion, risk
// residual re-evaluation, control promotion, NC auto-closure.
func (l *Linkage) applyConforming(ctx context.Context, auditID uint, meta AuditMeta, item ChecklistInput, sum *Summary) error {
	soa, err := l.store.GetSoAItem(ctx, meta.OrganizationID, item.ControlReference)
	if err != nil {
		return fmt.Errorf("load SoA item %s: %w", item.ControlReference, err)
	}
	if soa == nil {
		// catalog not fully configured for this org, tolerated
		return nil
	}

	auditDate := meta.AuditDate
	nextReview := auditDate.AddDate(1, 0, 0)

	soa.ImplementationStatus = models.ImplementationVerified
	soa.ComplianceScore = 100
	soa.LastAuditDate = &auditDate
	soa.LastAuditID = &auditID
	soa.LastAuditResult = string(models.ResultConforming)
	soa.VerifiedBy = meta.AuditorName
	soa.NextReviewDate = &nextReview
	soa.EvidenceDocuments = append(soa.EvidenceDocuments, models.EvidenceDocument{
		Type:      "audit_report",
		AuditID:   auditID,
		AuditCode: meta.AuditCode,
		Date:      auditDate,
		Result:    string(models.ResultConforming),
		Auditor:   meta.AuditorName,
	})

	if err := l.store.SaveSoAItem(ctx, soa); err != nil {
		return fmt.Errorf("save SoA item %s: %w", item.ControlReference, err)
	}
	sum.ControlsUpdated++

	// Re-evaluate every risk the SoA item references. A risk sharing
	// controls across items may be evaluated more than once per audit run;
	// the reduction is idempotent so that is harmless.
	for _, code := range soa.RelatedRisks {
		updated, err := l.reduceRiskIfVerified(ctx, auditID, meta, code)
		if err != nil {
			return fmt.Errorf("re-evaluate risk %s: %w", code, err)
		}
		if updated {
			sum.RisksUpdated++
		}
	}

	ctrl, err := l.store.GetControl(ctx, meta.OrganizationID, item.ControlReference)
	if err != nil {
		return fmt.Errorf("load control %s: %w", item.ControlReference, err)
	}
	if ctrl != nil {
		ctrl.Status = models.ControlImplemented
		ctrl.LastAuditDate = &auditDate
		ctrl.LastAuditResult = string(models.ResultConforming)
		ctrl.AuditHistory = append(ctrl.AuditHistory, models.AuditOutcome{
			AuditID:   auditID,
			AuditCode: meta.AuditCode,
			Date:      auditDate,
			Result:    string(models.ResultConforming),
			Auditor:   meta.AuditorName,
		})
		if err := l.store.SaveControl(ctx, ctrl); err != nil {
			return fmt.Errorf("save control %s: %w", item.ControlReference, err)
		}
	}

	// NCs awaiting effectiveness verification close when the control is
	// found conforming again; NCs in other states are untouched.
	ncs, err := l.store.ListNonConformitiesByControl(ctx, meta.OrganizationID, item.ControlReference, models.NCVerification)
	if err != nil {
		return fmt.Errorf("list NCs for control %s: %w", item.ControlReference, err)
	}
	for i := range ncs {
		nc := &ncs[i]
		nc.Status = models.NCClosed
		nc.ClosedAt = &auditDate
		nc.ClosureNotes = fmt.Sprintf("Chiusa automaticamente: controllo %s conforme nell'audit %s", item.ControlReference, meta.AuditCode)
		nc.EffectivenessVerified = true
		if err := l.store.SaveNonConformity(ctx, nc); err != nil {
			return fmt.Errorf("close NC %s: %w", nc.Code, err)
		}
		sum.NCsClosed++
	}

	return nil
}

// reduceRiskIfVerified sets the residual score to max(1, floor(inherent*0.4))
// iff every control the risk references is verified in the SoA. Returns
// whether the risk was updated.
func (l *Linkage) reduceRiskIfVerified(ctx context.Context, auditID uint, meta AuditMeta, riskCode string) (bool, error) {
	r, err := l.store.GetRiskByCode(ctx, meta.OrganizationID, riskCode)
	if err != nil {
		return false, err
	}
	if r == nil {
		return false, nil
	}

	allVerified, err := l.allControlsVerified(ctx, meta.OrganizationID, r.RelatedControls)
	if err != nil {
		return false, err
	}
	if !allVerified {
		return false, nil
	}

	residual := r.InherentScore * 2 / 5 // floor(inherent * 0.4)
	if residual < 1 {
		residual = 1
	}

	auditDate := meta.AuditDate
	r.ResidualScore = &residual
	r.VerificationStatus = models.VerificationVerified
	r.LastVerificationDate = &auditDate
	r.VerificationAuditID = &auditID
	note := fmt.Sprintf("Rischio verificato nell'audit %s: tutti i controlli collegati risultano verificati", meta.AuditCode)
	if r.Notes == "" {
		r.Notes = note
	} else {
		r.Notes = r.Notes + "\n" + note
	}

	if err := l.store.SaveRisk(ctx, r); err != nil {
		return false, err
	}
	return true, nil
}

// allControlsVerified is true only if every referenced control's SoA entry
// is verified. A risk with no related controls is never considered covered.
func (l *Linkage) allControlsVerified(ctx context.Context, orgID uint, controlRefs []string) (bool, error) {
	if len(controlRefs) == 0 {
		return false, nil
	}
	for _, ref := range controlRefs {
		item, err := l.store.GetSoAItem(ctx, orgID, ref)
		if err != nil {
			return false, err
		}
		if item == nil || item.ImplementationStatus != models.ImplementationVerified {
			return false, nil
		}
	}
	return true, nil
}

// applyNonConforming creates the major NC and demotes the SoA entry.
func (l *Linkage) applyNonConforming(ctx context.Context, auditID uint, meta AuditMeta, item ChecklistInput, sum *Summary) error {
	title := item.ControlTitle
	if title == "" {
		title = item.ControlReference
	}
	notes := item.AuditNotes
	if notes == "" {
		notes = "Nessuna nota dell'auditor"
	}

	nc := models.NonConformity{
		OrganizationID:  meta.OrganizationID,
		Code:            NewNCCode(),
		Title:           fmt.Sprintf("Non conformità - %s", title),
		Description:     fmt.Sprintf("Controllo %s non conforme nell'audit %s. Note: %s", item.ControlReference, meta.AuditCode, notes),
		Source:          "audit",
		SourceID:        &auditID,
		Severity:        models.NCMajor, // audit findings always open as major
		Status:          models.NCOpen,
		RelatedControl:  item.ControlReference,
		DetectionMethod: "internal_audit",
	}
	if err := l.store.InsertNonConformity(ctx, &nc); err != nil {
		return fmt.Errorf("create NC for control %s: %w", item.ControlReference, err)
	}
	sum.NCsCreated++

	soa, err := l.store.GetSoAItem(ctx, meta.OrganizationID, item.ControlReference)
	if err != nil {
		return fmt.Errorf("load SoA item %s: %w", item.ControlReference, err)
	}
	if soa != nil {
		auditDate := meta.AuditDate
		soa.ImplementationStatus = models.ImplementationImplemented // demoted from verified if it was
		soa.ComplianceScore = 50
		soa.LastAuditDate = &auditDate
		soa.LastAuditID = &auditID
		soa.LastAuditResult = string(models.ResultNonConforming)
		if err := l.store.SaveSoAItem(ctx, soa); err != nil {
			return fmt.Errorf("save SoA item %s: %w", item.ControlReference, err)
		}
	}

	return nil
}
