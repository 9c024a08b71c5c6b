package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/reconcile"
)

func TestBulkApplyAdditions(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)

	payload := reconcile.ApplyPayload{
		Additions: []model.ImportCandidate{
			{Code: "1003", Name: "Savings", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Empty(t, result.Warnings)

	accounts, err := s.FetchAccounts(context.Background(), testClient)
	require.NoError(t, err)
	assert.Len(t, accounts, 11)
}

func TestBulkApplyReactivatesInactiveMatch(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)
	require.NoError(t, s.DeactivateAccount(context.Background(), testClient, 10))

	payload := reconcile.ApplyPayload{
		Additions: []model.ImportCandidate{
			{Code: "5002", Name: "Supplies", Type: model.AccountTypeExpense, Active: true},
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Reactivated)

	accounts, err := s.FetchAccounts(context.Background(), testClient)
	require.NoError(t, err)
	for _, a := range accounts {
		if a.ID == 10 {
			assert.True(t, a.Active)
			assert.Equal(t, "Supplies", a.Name)
		}
	}
}

func TestBulkApplySkipsActiveDuplicate(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)

	payload := reconcile.ApplyPayload{
		Additions: []model.ImportCandidate{
			{Code: "1001", Name: "Cash Again", Type: model.AccountTypeAsset, Active: true},
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "already exists")
}

func TestBulkApplyModification(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)

	payload := reconcile.ApplyPayload{
		Modifications: []reconcile.Modification{
			{
				Original: model.Account{ID: 1, Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Active: true},
				Updated: model.ImportCandidate{
					Code: "1001", Name: "Cash in Bank", Type: model.AccountTypeAsset, Active: true,
					Description: "Cash and cash equivalents",
				},
			},
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	accounts, err := s.FetchAccounts(context.Background(), testClient)
	require.NoError(t, err)
	assert.Equal(t, "Cash in Bank", accounts[0].Name)
}

func TestBulkApplyModificationDropsRestrictedFields(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)
	postEntry(t, s, 1)

	payload := reconcile.ApplyPayload{
		Modifications: []reconcile.Modification{
			{
				Original: model.Account{ID: 1, Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Active: true},
				Updated: model.ImportCandidate{
					Code: "9001", Name: "Cash Reserve", Type: model.AccountTypeExpense, Active: true,
				},
			},
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated, "the name change still lands")
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "code and type changes dropped")

	accounts, err := s.FetchAccounts(context.Background(), testClient)
	require.NoError(t, err)
	assert.Equal(t, "1001", accounts[0].Code)
	assert.Equal(t, model.AccountTypeAsset, accounts[0].Type)
	assert.Equal(t, "Cash Reserve", accounts[0].Name)
}

func TestBulkApplyDispositions(t *testing.T) {
	s := newTestStore(t)
	seedSample(t, s)
	postEntry(t, s, 7)

	payload := reconcile.ApplyPayload{
		Deactivations: []model.Account{
			{ID: 5, Code: "3001"},
		},
		Deletions: []model.Account{
			{ID: 10, Code: "5002"},
			{ID: 7, Code: "4001"}, // has postings; degrades to deactivation
		},
	}
	result, err := s.BulkApply(context.Background(), testClient, payload)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Deactivated)
	assert.Equal(t, 1, result.Deleted)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "deactivated instead of deleted")

	accounts, err := s.FetchAccounts(context.Background(), testClient)
	require.NoError(t, err)
	assert.Len(t, accounts, 9)
	for _, a := range accounts {
		switch a.ID {
		case 5, 7:
			assert.False(t, a.Active, "account %d should be inactive", a.ID)
		case 10:
			t.Fatalf("account 10 should be deleted")
		}
	}
}

func TestCapWarnings(t *testing.T) {
	warnings := make([]string, maxWarnings+7)
	for i := range warnings {
		warnings[i] = "w"
	}
	capped := capWarnings(warnings)
	require.Len(t, capped, maxWarnings+1)
	assert.Contains(t, capped[maxWarnings], "7 more")
}
