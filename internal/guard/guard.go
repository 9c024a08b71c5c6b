// Package guard enforces field-level immutability for accounts that already
// carry transaction history.
package guard

import (
	"context"

	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// HistoryChecker is the collaborator consulted before applying a
// restricted-field change.
type HistoryChecker interface {
	CheckHasTransactions(ctx context.Context, accountID int) (bool, error)
}

// SanitizeUpdate reduces a proposed patch to the minimal genuine delta.
// When hasTransactions is true, code and type are stripped unconditionally,
// whether or not the caller tried to change them. Fields equal to their
// original value are omitted so the apply step only transmits real changes.
func SanitizeUpdate(original model.Account, proposed model.AccountPatch, hasTransactions bool) model.AccountPatch {
	if hasTransactions {
		proposed.Code = nil
		proposed.Type = nil
	}

	if proposed.Code != nil && *proposed.Code == original.Code {
		proposed.Code = nil
	}
	if proposed.Name != nil && *proposed.Name == original.Name {
		proposed.Name = nil
	}
	if proposed.Type != nil && *proposed.Type == original.Type {
		proposed.Type = nil
	}
	if proposed.Subtype != nil && *proposed.Subtype == original.Subtype {
		proposed.Subtype = nil
	}
	if proposed.IsSubledger != nil && *proposed.IsSubledger == original.IsSubledger {
		proposed.IsSubledger = nil
	}
	if proposed.SubledgerType != nil && *proposed.SubledgerType == original.SubledgerType {
		proposed.SubledgerType = nil
	}
	if proposed.ParentID != nil && *proposed.ParentID == original.ParentID {
		proposed.ParentID = nil
	}
	if proposed.Active != nil && *proposed.Active == original.Active {
		proposed.Active = nil
	}
	if proposed.Description != nil && *proposed.Description == original.Description {
		proposed.Description = nil
	}
	return proposed
}

// PrepareUpdate runs the required transaction-history check and sanitizes
// the patch. When the check itself fails, the safe assumption is that the
// account has transactions: restricted fields are stripped and the operator
// can still complete the update. The returned error, if any, is a
// *errs.TransactionCheckError for logging; it is never a blocking failure.
func PrepareUpdate(ctx context.Context, checker HistoryChecker, original model.Account, proposed model.AccountPatch) (model.AccountPatch, bool, error) {
	hasTransactions, err := checker.CheckHasTransactions(ctx, original.ID)
	if err != nil {
		checkErr := &errs.TransactionCheckError{AccountID: original.ID, Err: err}
		return SanitizeUpdate(original, proposed, true), true, checkErr
	}
	return SanitizeUpdate(original, proposed, hasTransactions), hasTransactions, nil
}
