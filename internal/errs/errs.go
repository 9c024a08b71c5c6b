// Package errs defines the error taxonomy shared by the chart engine:
// accumulated row-level validation errors, structural errors that block
// submission, and recoverable collaborator failures.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSelection is returned when an apply payload is built with every
// selection set empty. The apply step must not be invoked.
var ErrNoSelection = errors.New("no changes selected")

// ValidationError describes a single row-level problem in an import file.
// Row is 1-based and includes the header row, matching what the operator
// sees in their spreadsheet.
type ValidationError struct {
	Row     int
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ValidationErrors accumulates row-level errors across a whole parse; the
// parser never short-circuits, so all problems surface in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// ConflictError signals that a delete was blocked by transaction history.
// CanDeactivate tells the caller that switching the disposition to
// deactivation will succeed.
type ConflictError struct {
	AccountID     int
	CanDeactivate bool
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account %d has transactions and cannot be deleted", e.AccountID)
}

// TransactionCheckError wraps a failure of the transaction-history check.
// Callers recover by assuming the account has transactions; the failure is
// never surfaced as a blocking error to the operator.
type TransactionCheckError struct {
	AccountID int
	Err       error
}

func (e *TransactionCheckError) Error() string {
	return fmt.Sprintf("checking transactions for account %d: %v", e.AccountID, e.Err)
}

func (e *TransactionCheckError) Unwrap() error { return e.Err }

// CycleError signals a parent assignment that would make an account its own
// ancestor. Rejected before submission.
type CycleError struct {
	AccountID int
	ParentID  int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parent %d would make account %d its own ancestor", e.ParentID, e.AccountID)
}
