// Package export writes chart-of-accounts workbooks: a full export with
// parent references resolved, and an import template.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

const sheetName = "Chart of Accounts"

var header = []string{
	"Code", "Name", "Type", "Subtype", "IsSubledger", "SubledgerType",
	"ParentCode", "ParentName", "Active", "Description",
}

// WriteChart writes all accounts to an xlsx workbook at path, with parent
// code and name resolved from the flat set.
func WriteChart(path string, accounts []model.Account) error {
	byID := make(map[int]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	wb := excelize.NewFile()
	defer wb.Close()
	if err := wb.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := wb.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		var parentCode, parentName string
		if parent, ok := byID[a.ParentID]; ok && a.ParentID != 0 {
			parentCode = parent.Code
			parentName = parent.Name
		}
		row := []string{
			a.Code, a.Name, string(a.Type), a.Subtype,
			yesNo(a.IsSubledger), a.SubledgerType,
			parentCode, parentName, yesNo(a.Active), a.Description,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := wb.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// WriteTemplate writes an import template seeded from the live chart, or
// from the fixed sample chart when the live chart is empty.
func WriteTemplate(path string, accounts []model.Account) error {
	if len(accounts) == 0 {
		accounts = chart.SampleChart()
	}
	return WriteChart(path, accounts)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
