package model

// AccountPatch is a partial account update. Nil fields are omitted from the
// update entirely, which is how restricted fields get stripped and how the
// apply step transmits only genuine deltas.
type AccountPatch struct {
	Code          *string
	Name          *string
	Type          *AccountType
	Subtype       *string
	IsSubledger   *bool
	SubledgerType *string
	ParentID      *int
	Active        *bool
	Description   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Code == nil && p.Name == nil && p.Type == nil &&
		p.Subtype == nil && p.IsSubledger == nil && p.SubledgerType == nil &&
		p.ParentID == nil && p.Active == nil && p.Description == nil
}

// Apply returns a copy of a with the patch's non-nil fields set.
func (p AccountPatch) Apply(a Account) Account {
	if p.Code != nil {
		a.Code = *p.Code
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Subtype != nil {
		a.Subtype = *p.Subtype
	}
	if p.IsSubledger != nil {
		a.IsSubledger = *p.IsSubledger
	}
	if p.SubledgerType != nil {
		a.SubledgerType = *p.SubledgerType
	}
	if p.ParentID != nil {
		a.ParentID = *p.ParentID
	}
	if p.Active != nil {
		a.Active = *p.Active
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	return a
}
