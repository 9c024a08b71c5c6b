package model

import (
	"fmt"
	"strings"
)

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists the five valid types in code-prefix order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType parses a type string case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range AccountTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid account type %q", s)
}

// Account represents one ledger account in a client's chart.
type Account struct {
	ID            int
	Code          string // unique within the client's chart, active or not
	Name          string
	Type          AccountType
	Subtype       string
	IsSubledger   bool
	SubledgerType string // required when IsSubledger
	ParentID      int    // 0 = root
	Active        bool
	Description   string
}

// ImportCandidate is a transient account record parsed from an uploaded
// file. ID is non-zero only when the file carried an explicit account id.
// Parent linkage is either ParentID (numeric, used verbatim) or ParentCode
// (resolved against the live tree before diffing).
type ImportCandidate struct {
	ID            int
	Code          string
	Name          string
	Type          AccountType
	Subtype       string
	IsSubledger   bool
	SubledgerType string
	ParentID      int
	ParentCode    string
	Active        bool
	Description   string
}
