package reconcile

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Disposition is the chosen handling for an account detected as missing
// from an import.
type Disposition string

const (
	// DispositionDeactivate marks the account inactive. This is the default.
	DispositionDeactivate Disposition = "inactive"
	// DispositionDelete removes the account outright; blocked by
	// transaction history at apply time.
	DispositionDelete Disposition = "delete"
)

// ImportSession holds the preview state for one import: the ChangeSet plus
// the operator's approvals and removal dispositions. It is request-scoped
// and discarded when the preview is dismissed or a new file is chosen.
type ImportSession struct {
	ID        string
	ChangeSet ChangeSet

	selectedAdditions     map[string]bool
	selectedModifications map[string]bool
	selectedRemovals      map[string]bool
	dispositions          map[string]Disposition
}

// NewSession starts a preview session over a ChangeSet with nothing
// selected.
func NewSession(cs ChangeSet) *ImportSession {
	s := &ImportSession{
		ID:        uuid.New().String(),
		ChangeSet: cs,
	}
	s.Reset()
	return s
}

// Reset clears all three selection sets and the disposition map.
func (s *ImportSession) Reset() {
	s.selectedAdditions = make(map[string]bool)
	s.selectedModifications = make(map[string]bool)
	s.selectedRemovals = make(map[string]bool)
	s.dispositions = make(map[string]Disposition)
}

// SelectAddition approves the addition with the given account code.
func (s *ImportSession) SelectAddition(code string) {
	s.selectedAdditions[strings.ToLower(code)] = true
}

// SelectModification approves the modification with the given account code.
func (s *ImportSession) SelectModification(code string) {
	s.selectedModifications[strings.ToLower(code)] = true
}

// SelectRemoval approves the removal with the given account code.
func (s *ImportSession) SelectRemoval(code string) {
	s.selectedRemovals[strings.ToLower(code)] = true
}

// Deselect drops a code from every selection set.
func (s *ImportSession) Deselect(code string) {
	key := strings.ToLower(code)
	delete(s.selectedAdditions, key)
	delete(s.selectedModifications, key)
	delete(s.selectedRemovals, key)
}

// SetDisposition overrides the handling for a selected removal.
func (s *ImportSession) SetDisposition(code string, d Disposition) {
	s.dispositions[strings.ToLower(code)] = d
}

// DispositionFor returns the removal handling for a code, defaulting to
// deactivation.
func (s *ImportSession) DispositionFor(code string) Disposition {
	if d, ok := s.dispositions[strings.ToLower(code)]; ok {
		return d
	}
	return DispositionDeactivate
}

// ApplyPayload carries exactly the operator-approved changes to the bulk
// apply collaborator. Removals arrive pre-split by disposition.
type ApplyPayload struct {
	SessionID     string
	Additions     []model.ImportCandidate
	Modifications []Modification
	Deactivations []model.Account
	Deletions     []model.Account
}

// BuildApplyPayload filters the ChangeSet down to the approved codes. It is
// a strict filter: an item missing from the selection sets is never
// included, whatever else is. With every selection set empty it fails with
// errs.ErrNoSelection and the apply step must not be invoked.
func (s *ImportSession) BuildApplyPayload() (ApplyPayload, error) {
	if len(s.selectedAdditions) == 0 && len(s.selectedModifications) == 0 && len(s.selectedRemovals) == 0 {
		return ApplyPayload{}, errs.ErrNoSelection
	}

	p := ApplyPayload{SessionID: s.ID}
	for _, add := range s.ChangeSet.Additions {
		if s.selectedAdditions[strings.ToLower(add.Code)] {
			p.Additions = append(p.Additions, add)
		}
	}
	for _, mod := range s.ChangeSet.Modifications {
		if s.selectedModifications[strings.ToLower(mod.Original.Code)] {
			p.Modifications = append(p.Modifications, mod)
		}
	}
	for _, rem := range s.ChangeSet.Removals {
		if !s.selectedRemovals[strings.ToLower(rem.Code)] {
			continue
		}
		if s.DispositionFor(rem.Code) == DispositionDelete {
			p.Deletions = append(p.Deletions, rem)
		} else {
			p.Deactivations = append(p.Deactivations, rem)
		}
	}
	return p, nil
}
