// Package reconcile diffs a parsed import against the live chart and tracks
// which of the classified changes the operator has approved.
package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// FieldDelta describes one field-level difference on a matched account.
type FieldDelta struct {
	Field string
	Old   string
	New   string
}

// String renders the delta the way the preview screen shows it, with empty
// values printed as None.
func (d FieldDelta) String() string {
	return fmt.Sprintf("%s: %q → %q", d.Field, orNone(d.Old), orNone(d.New))
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// Modification pairs an existing account with its imported replacement and
// the fields that differ.
type Modification struct {
	Original model.Account
	Updated  model.ImportCandidate
	Deltas   []FieldDelta
}

// ChangeSet classifies an import against the live chart. Unchanged is a
// derived count, not a bucket.
type ChangeSet struct {
	Additions     []model.ImportCandidate
	Modifications []Modification
	Removals      []model.Account
	Unchanged     int
}

// Empty reports whether the diff found nothing to do.
func (c ChangeSet) Empty() bool {
	return len(c.Additions) == 0 && len(c.Modifications) == 0 && len(c.Removals) == 0
}

// Diff three-way compares candidates against the existing flat account set
// (the FlattenAll form of the tree). Matching is by id when the candidate
// carries one the chart knows, else by code case-insensitively. Inactive
// existing accounts never enter Removals: a once-deactivated account must
// not be resurrected into the missing list merely by omission.
func Diff(candidates []model.ImportCandidate, existing []model.Account) ChangeSet {
	byID := make(map[int]model.Account, len(existing))
	byCode := make(map[string]model.Account, len(existing))
	for _, a := range existing {
		byID[a.ID] = a
		byCode[strings.ToLower(a.Code)] = a
	}

	var cs ChangeSet
	candidateCodes := make(map[string]bool, len(candidates))
	matchedIDs := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		candidateCodes[strings.ToLower(c.Code)] = true

		original, matched := matchCandidate(c, byID, byCode)
		if !matched {
			cs.Additions = append(cs.Additions, c)
			continue
		}
		matchedIDs[original.ID] = true

		deltas := compareFields(original, c, byID)
		if len(deltas) > 0 {
			cs.Modifications = append(cs.Modifications, Modification{
				Original: original,
				Updated:  c,
				Deltas:   deltas,
			})
		}
	}

	// Removal detection is code-based, but an account matched by id stays
	// out even when its code changed: a rename is a modification, never a
	// removal on the old code.
	for _, a := range existing {
		if a.Active && !candidateCodes[strings.ToLower(a.Code)] && !matchedIDs[a.ID] {
			cs.Removals = append(cs.Removals, a)
		}
	}

	cs.Unchanged = len(candidates) - len(cs.Additions) - len(cs.Modifications)
	return cs
}

func matchCandidate(c model.ImportCandidate, byID map[int]model.Account, byCode map[string]model.Account) (model.Account, bool) {
	if c.ID != 0 {
		if a, ok := byID[c.ID]; ok {
			return a, true
		}
	}
	a, ok := byCode[strings.ToLower(c.Code)]
	return a, ok
}

func compareFields(a model.Account, c model.ImportCandidate, byID map[int]model.Account) []FieldDelta {
	var deltas []FieldDelta
	diff := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			deltas = append(deltas, FieldDelta{Field: field, Old: oldVal, New: newVal})
		}
	}

	diff("Code", a.Code, c.Code)
	diff("Name", a.Name, c.Name)
	diff("Type", string(a.Type), string(c.Type))
	diff("Subtype", a.Subtype, c.Subtype)
	diff("Subledger", yesNo(a.IsSubledger), yesNo(c.IsSubledger))
	diff("SubledgerType", a.SubledgerType, c.SubledgerType)
	diff("Active", yesNo(a.Active), yesNo(c.Active))
	diff("Description", a.Description, c.Description)

	// Parent compared by resolved code when the import named one, else by
	// raw id; comparing both would double-report a single reparent.
	if c.ParentCode != "" {
		diff("ParentCode", parentCode(a, byID), c.ParentCode)
	} else {
		diff("ParentId", idString(a.ParentID), idString(c.ParentID))
	}

	return deltas
}

func parentCode(a model.Account, byID map[int]model.Account) string {
	if a.ParentID == 0 {
		return ""
	}
	return byID[a.ParentID].Code
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func idString(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}
