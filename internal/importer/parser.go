package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// columnAliases maps accepted header names to canonical columns. Headers
// are case-sensitive; the older AccountCode/AccountName/AccountType forms
// stay accepted for backward compatibility.
var columnAliases = map[string]string{
	"Id":            "id",
	"AccountId":     "id",
	"Code":          "code",
	"AccountCode":   "code",
	"Name":          "name",
	"AccountName":   "name",
	"Type":          "type",
	"AccountType":   "type",
	"Subtype":       "subtype",
	"SubType":       "subtype",
	"IsSubledger":   "subledger",
	"Subledger":     "subledger",
	"SubledgerType": "subledgerType",
	"ParentId":      "parentId",
	"ParentID":      "parentId",
	"ParentCode":    "parentCode",
	"Active":        "active",
	"Description":   "description",
}

// Parse normalizes raw rows into import candidates. The first row must be a
// header. codeToID resolves ParentCode references against the current tree
// only; cross-row parent references within one import are not supported and
// surface as row errors. Every row is attempted; if any row fails, the
// returned errors are non-empty and no candidates are produced.
func Parse(rows [][]string, codeToID map[string]int) ([]model.ImportCandidate, errs.ValidationErrors) {
	var verrs errs.ValidationErrors
	if len(rows) == 0 {
		verrs = append(verrs, errs.ValidationError{Row: 1, Message: "file is empty, expected a header row"})
		return nil, verrs
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		if canonical, ok := columnAliases[strings.TrimSpace(h)]; ok {
			cols[canonical] = i
		}
	}
	for _, required := range []string{"code", "name", "type"} {
		if _, ok := cols[required]; !ok {
			verrs = append(verrs, errs.ValidationError{Row: 1, Message: fmt.Sprintf("missing required column %q", required)})
		}
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	var records []model.ImportCandidate
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based spreadsheet rows with a header row
		rec, rowErrs := parseRow(row, cols, codeToID, rowNum)
		verrs = append(verrs, rowErrs...)
		records = append(records, rec)
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return records, nil
}

func parseRow(row []string, cols map[string]int, codeToID map[string]int, rowNum int) (model.ImportCandidate, errs.ValidationErrors) {
	var verrs errs.ValidationErrors
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := model.ImportCandidate{
		Code:          cell("code"),
		Name:          cell("name"),
		Subtype:       cell("subtype"),
		SubledgerType: cell("subledgerType"),
		ParentCode:    cell("parentCode"),
		Description:   cell("description"),
	}

	if rawID := cell("id"); rawID != "" {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: fmt.Sprintf("invalid account id %q", rawID)})
		} else {
			rec.ID = id
		}
	}

	if rec.Code == "" {
		verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: "code is required"})
	}
	if rec.Name == "" {
		verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: "name is required"})
	}

	if rawType := cell("type"); rawType == "" {
		verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: "type is required"})
	} else if t, err := model.ParseAccountType(rawType); err != nil {
		verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: err.Error()})
	} else {
		rec.Type = t
	}

	// Active defaults true; only an explicit NO disables.
	rec.Active = !strings.EqualFold(cell("active"), "NO")

	// Subledger requires the exact marker YES.
	rec.IsSubledger = cell("subledger") == "YES"
	if rec.IsSubledger && rec.SubledgerType == "" {
		verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: "subledger type is required for subledger accounts"})
	}

	// A numeric ParentId wins; otherwise ParentCode resolves against the
	// current tree.
	if rawParent := cell("parentId"); rawParent != "" {
		id, err := strconv.Atoi(rawParent)
		if err != nil {
			verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: fmt.Sprintf("invalid parent id %q", rawParent)})
		} else {
			rec.ParentID = id
		}
	} else if rec.ParentCode != "" {
		id, ok := codeToID[strings.ToLower(rec.ParentCode)]
		if !ok {
			verrs = append(verrs, errs.ValidationError{Row: rowNum, Message: fmt.Sprintf("parent code %q not found in the current chart", rec.ParentCode)})
		} else {
			rec.ParentID = id
		}
	}

	return rec, verrs
}
