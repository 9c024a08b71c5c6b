package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestWriteChartResolvesParents(t *testing.T) {
	accounts := []model.Account{
		{ID: 1, Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Active: true},
		{ID: 2, Code: "1002", Name: "Checking", Type: model.AccountTypeAsset, ParentID: 1, Active: true},
	}
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	require.NoError(t, WriteChart(path, accounts))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&importer.XLSXReader{}).Read(f)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Checking's row carries its parent's code and name.
	assert.Equal(t, "1001", rows[2][6])
	assert.Equal(t, "Cash", rows[2][7])
}

func TestExportRoundTripsThroughParser(t *testing.T) {
	accounts := chart.SampleChart()
	path := filepath.Join(t.TempDir(), "chart.xlsx")
	require.NoError(t, WriteChart(path, accounts))

	records, err := importer.ParseFile(path, chart.CodeIndex(accounts))
	require.NoError(t, err)
	require.Len(t, records, len(accounts))

	assert.Equal(t, "1001", records[0].Code)
	assert.Equal(t, model.AccountTypeAsset, records[0].Type)
	assert.True(t, records[2].IsSubledger)
	assert.Equal(t, "vendor", records[2].SubledgerType)
}

func TestWriteTemplateFallsBackToSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&importer.XLSXReader{}).Read(f)
	require.NoError(t, err)
	assert.Len(t, rows, len(chart.SampleChart())+1)
}

func TestWriteTemplateUsesLiveChart(t *testing.T) {
	accounts := []model.Account{
		{ID: 1, Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Active: true},
	}
	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, WriteTemplate(path, accounts))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := (&importer.XLSXReader{}).Read(f)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cash", rows[1][1])
}
