package chart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// typePrefixes maps each account type to its leading code digit.
var typePrefixes = map[model.AccountType]string{
	model.AccountTypeAsset:     "1",
	model.AccountTypeLiability: "2",
	model.AccountTypeEquity:    "3",
	model.AccountTypeRevenue:   "4",
	model.AccountTypeExpense:   "5",
}

// expensePrefixes maps expense subtypes to secondary digit bands so large
// expense charts do not collide in the 5xxx range.
var expensePrefixes = map[string]string{
	"operating":    "5",
	"cogs":         "5",
	"marketing":    "6",
	"rent":         "6",
	"payroll":      "6",
	"utilities":    "7",
	"equipment":    "7",
	"professional": "7",
	"travel":       "8",
	"insurance":    "8",
	"taxes":        "8",
	"depreciation": "9",
}

// CodePrefix resolves the leading digit for a (type, subtype) bucket.
func CodePrefix(t model.AccountType, subtype string) string {
	if t == model.AccountTypeExpense {
		if p, ok := expensePrefixes[strings.ToLower(strings.TrimSpace(subtype))]; ok {
			return p
		}
	}
	if p, ok := typePrefixes[t]; ok {
		return p
	}
	return "1"
}

// NextCode derives the next unused code for a (type, subtype) bucket from
// the current flat account list. Runs only for newly created accounts;
// edits to existing accounts never re-allocate.
func NextCode(t model.AccountType, subtype string, existing []model.Account) string {
	prefix := CodePrefix(t, subtype)

	var codes []string
	for _, a := range existing {
		if strings.HasPrefix(a.Code, prefix) {
			codes = append(codes, a.Code)
		}
	}
	if len(codes) == 0 {
		return prefix + "001"
	}

	sort.Strings(codes)
	last := digitsOnly(codes[len(codes)-1])

	rest := strings.TrimPrefix(last, prefix)
	n, err := strconv.Atoi(rest)
	if err != nil {
		n = 0
	}
	return fmt.Sprintf("%s%03d", prefix, n+1)
}

// ClampCode keeps a manually edited code inside its (type, subtype) prefix:
// the user-entered suffix is preserved and the prefix is force-prepended
// when missing.
func ClampCode(t model.AccountType, subtype, input string) string {
	prefix := CodePrefix(t, subtype)
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, prefix) {
		return input
	}
	return prefix + input
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
