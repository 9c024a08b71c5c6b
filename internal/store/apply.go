package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/guard"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/reconcile"
)

// maxWarnings bounds the warning list in an ApplyResult; the tail is
// summarized into a final count line.
const maxWarnings = 25

// ApplyResult reports per-outcome counts for a bulk apply, never a bare
// success flag.
type ApplyResult struct {
	Added       int      `json:"added"`
	Updated     int      `json:"updated"`
	Reactivated int      `json:"reactivated"`
	Deactivated int      `json:"inactive"`
	Deleted     int      `json:"deleted"`
	Skipped     int      `json:"skipped"`
	Warnings    []string `json:"warnings,omitempty"`
}

func (r *ApplyResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// BulkApply executes an operator-approved apply payload. The payload is
// already a strict selection; nothing outside it is touched. Conflicts
// degrade per item (a blocked delete becomes a deactivation, a failed
// history check freezes restricted fields) instead of aborting the batch.
func (s *Store) BulkApply(ctx context.Context, clientID string, payload reconcile.ApplyPayload) (ApplyResult, error) {
	var result ApplyResult

	for _, add := range payload.Additions {
		if err := s.applyAddition(ctx, clientID, add, &result); err != nil {
			return result, err
		}
	}
	for _, mod := range payload.Modifications {
		if err := s.applyModification(ctx, clientID, mod, &result); err != nil {
			return result, err
		}
	}
	for _, rem := range payload.Deactivations {
		if err := s.DeactivateAccount(ctx, clientID, rem.ID); err != nil {
			result.Skipped++
			result.warn("could not deactivate %s: %v", rem.Code, err)
			continue
		}
		result.Deactivated++
	}
	for _, rem := range payload.Deletions {
		s.applyDeletion(ctx, clientID, rem, &result)
	}

	result.Warnings = capWarnings(result.Warnings)
	s.log.Info("bulk apply finished",
		zap.String("client", clientID),
		zap.String("session", payload.SessionID),
		zap.Int("added", result.Added),
		zap.Int("updated", result.Updated),
		zap.Int("reactivated", result.Reactivated),
		zap.Int("deactivated", result.Deactivated),
		zap.Int("deleted", result.Deleted),
		zap.Int("skipped", result.Skipped),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

func (s *Store) applyAddition(ctx context.Context, clientID string, add model.ImportCandidate, result *ApplyResult) error {
	existing, err := s.FetchAccounts(ctx, clientID)
	if err != nil {
		return err
	}

	// An addition whose code belongs to an inactive account reactivates it
	// rather than violating code uniqueness.
	if match := findByCode(existing, add.Code); match != nil {
		if match.Active {
			result.Skipped++
			result.warn("code %s already exists and is active, skipped", add.Code)
			return nil
		}
		rec, err := s.loadAccount(ctx, clientID, match.ID)
		if err != nil {
			return err
		}
		rec.Active = true
		rec.Name = add.Name
		rec.Description = add.Description
		if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
			return fmt.Errorf("reactivating account %s: %w", add.Code, err)
		}
		result.Reactivated++
		return nil
	}

	parentID := add.ParentID
	if parentID != 0 && findByID(existing, parentID) == nil {
		result.warn("parent %d for %s not found, created as root", parentID, add.Code)
		parentID = 0
	}

	rec := AccountRecord{
		ClientID:      clientID,
		Code:          add.Code,
		Name:          add.Name,
		Type:          string(add.Type),
		Subtype:       add.Subtype,
		IsSubledger:   add.IsSubledger,
		SubledgerType: add.SubledgerType,
		ParentID:      parentID,
		Active:        add.Active,
		Description:   add.Description,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("creating account %s: %w", add.Code, err)
	}
	result.Added++
	return nil
}

func (s *Store) applyModification(ctx context.Context, clientID string, mod reconcile.Modification, result *ApplyResult) error {
	rec, err := s.loadAccount(ctx, clientID, mod.Original.ID)
	if err != nil {
		result.Skipped++
		result.warn("account %s no longer exists, skipped", mod.Original.Code)
		return nil
	}
	original := rec.toModel()

	existing, err := s.FetchAccounts(ctx, clientID)
	if err != nil {
		return err
	}
	if mod.Updated.ParentID != original.ParentID &&
		chart.WouldCycle(existing, original.ID, mod.Updated.ParentID) {
		result.Skipped++
		result.warn("parent change for %s would create a cycle, skipped", original.Code)
		return nil
	}

	patch := candidatePatch(mod.Updated)
	sanitized, hasTransactions, checkErr := guard.PrepareUpdate(ctx, s, original, patch)
	if checkErr != nil {
		result.warn("history check failed for %s, assuming restricted fields are frozen", original.Code)
	}
	if hasTransactions && (*patch.Code != original.Code || *patch.Type != original.Type) {
		result.warn("%s has transactions, code and type changes dropped", original.Code)
	}
	if sanitized.IsEmpty() {
		result.Skipped++
		return nil
	}

	updated := sanitized.Apply(original)
	rec.Code = updated.Code
	rec.Name = updated.Name
	rec.Type = string(updated.Type)
	rec.Subtype = updated.Subtype
	rec.IsSubledger = updated.IsSubledger
	rec.SubledgerType = updated.SubledgerType
	rec.ParentID = updated.ParentID
	rec.Active = updated.Active
	rec.Description = updated.Description
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("updating account %s: %w", original.Code, err)
	}
	result.Updated++
	return nil
}

func (s *Store) applyDeletion(ctx context.Context, clientID string, rem model.Account, result *ApplyResult) {
	err := s.DeleteAccount(ctx, clientID, rem.ID)
	if err == nil {
		result.Deleted++
		return
	}
	// A delete blocked by transaction history degrades to deactivation.
	if conflictCanDeactivate(err) {
		if derr := s.DeactivateAccount(ctx, clientID, rem.ID); derr == nil {
			result.Deactivated++
			result.warn("%s has transactions, deactivated instead of deleted", rem.Code)
			return
		}
	}
	result.Skipped++
	result.warn("could not delete %s: %v", rem.Code, err)
}

func conflictCanDeactivate(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && conflict.CanDeactivate
}

// candidatePatch lifts every candidate field into a patch; the guard then
// reduces it to the genuine delta.
func candidatePatch(c model.ImportCandidate) model.AccountPatch {
	t := c.Type
	return model.AccountPatch{
		Code:          &c.Code,
		Name:          &c.Name,
		Type:          &t,
		Subtype:       &c.Subtype,
		IsSubledger:   &c.IsSubledger,
		SubledgerType: &c.SubledgerType,
		ParentID:      &c.ParentID,
		Active:        &c.Active,
		Description:   &c.Description,
	}
}

func capWarnings(warnings []string) []string {
	if len(warnings) <= maxWarnings {
		return warnings
	}
	capped := warnings[:maxWarnings]
	return append(capped, fmt.Sprintf("and %d more warnings", len(warnings)-maxWarnings))
}
