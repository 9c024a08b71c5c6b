package chart

import "github.com/ledgerline-dev/ledgerline/internal/model"

// SampleChart returns a fixed illustrative chart spanning all five account
// types with one parent/child pair each. It seeds new clients and template
// workbooks when no live chart exists.
func SampleChart() []model.Account {
	return []model.Account{
		{ID: 1, Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Active: true, Description: "Cash and cash equivalents"},
		{ID: 2, Code: "1002", Name: "Checking Account", Type: model.AccountTypeAsset, ParentID: 1, Active: true, Description: "Primary operating account"},
		{ID: 3, Code: "2001", Name: "Accounts Payable", Type: model.AccountTypeLiability, Active: true, IsSubledger: true, SubledgerType: "vendor", Description: "Amounts owed to vendors"},
		{ID: 4, Code: "2002", Name: "Accrued Expenses", Type: model.AccountTypeLiability, ParentID: 3, Active: true},
		{ID: 5, Code: "3001", Name: "Owner's Equity", Type: model.AccountTypeEquity, Active: true},
		{ID: 6, Code: "3002", Name: "Retained Earnings", Type: model.AccountTypeEquity, ParentID: 5, Active: true},
		{ID: 7, Code: "4001", Name: "Service Revenue", Type: model.AccountTypeRevenue, Active: true, Description: "Income from services rendered"},
		{ID: 8, Code: "4002", Name: "Consulting Revenue", Type: model.AccountTypeRevenue, ParentID: 7, Active: true},
		{ID: 9, Code: "5001", Name: "Operating Expenses", Type: model.AccountTypeExpense, Subtype: "operating", Active: true, Description: "General operating costs"},
		{ID: 10, Code: "5002", Name: "Office Supplies", Type: model.AccountTypeExpense, Subtype: "operating", ParentID: 9, Active: true},
	}
}
