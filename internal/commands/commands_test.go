package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/audit"
	"github.com/ledgerline-dev/ledgerline/internal/commands"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := commands.NewRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCLI(t, "init", dir, "--name", "Test Biz", "--client-id", "client-1")
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initWorkspace(t)

	for _, d := range []string{"logs", "exports", "import"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err := os.Stat(filepath.Join(dir, "ledgerline.db"))
	require.NoError(t, err, "database should exist")
}

func TestInit_Config(t *testing.T) {
	dir := initWorkspace(t)

	data, err := os.ReadFile(filepath.Join(dir, "ledgerline.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "client_id: client-1")
	assert.Contains(t, contents, "path: ledgerline.db")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestTree_PrintsHierarchy(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "tree", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "1001  Cash [asset]")
	assert.Contains(t, out, "  1002  Checking Account [asset]")
	assert.Contains(t, out, "2001  Accounts Payable [liability]")
}

func TestSearch_FindsMatchesWithAncestors(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "search", "checking", "--dir", dir)
	require.NoError(t, err)

	// The hit plus its parent keeping the path intact.
	assert.Contains(t, out, "1002  Checking Account")
	assert.Contains(t, out, "1001  Cash")
	assert.NotContains(t, out, "2001")
}

func TestSearch_NoMatches(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "search", "zzzz", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts matched.")
}

func TestCreate_AllocatesCode(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "create", "--dir", dir, "--name", "Petty Cash", "--type", "asset")
	require.NoError(t, err)
	assert.Contains(t, out, "Created account 1003 Petty Cash")

	out, err = runCLI(t, "tree", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1003  Petty Cash [asset]")
}

func TestCreate_ExpenseSubtypeBand(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "create", "--dir", dir, "--name", "Ad Spend", "--type", "expense", "--subtype", "marketing")
	require.NoError(t, err)
	assert.Contains(t, out, "Created account 6001 Ad Spend")
}

func TestUpdate_Rename(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "update", "1", "--dir", dir, "--name", "Cash in Bank")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated account 1001 Cash in Bank")
}

func TestUpdate_NoChanges(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runCLI(t, "update", "1", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no changes")
}

func TestDelete_CleanAccount(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runCLI(t, "delete", "10", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted account 10")
}

func TestImport_PreviewOnly(t *testing.T) {
	dir := initWorkspace(t)
	file := writeImportCSV(t, dir)

	out, err := runCLI(t, "import", file, "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "+ 1003  Petty Cash")
	assert.Contains(t, out, `Name: "Cash" → "Cash in Bank"`)

	// Preview never writes.
	tree, err := runCLI(t, "tree", "--dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, tree, "Petty Cash")
	assert.Contains(t, tree, "1001  Cash [asset]")
}

func TestImport_ApplyRequiresSelection(t *testing.T) {
	dir := initWorkspace(t)
	file := writeImportCSV(t, dir)

	_, err := runCLI(t, "import", file, "--dir", dir, "--apply")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing selected")
}

func TestImport_ApplySelectedAddition(t *testing.T) {
	dir := initWorkspace(t)
	file := writeImportCSV(t, dir)

	out, err := runCLI(t, "import", file, "--dir", dir, "--apply", "--add", "1003")
	require.NoError(t, err)
	assert.Contains(t, out, "added=1")

	tree, err := runCLI(t, "tree", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, tree, "1003  Petty Cash [asset]")
	// The unselected modification stayed out.
	assert.Contains(t, tree, "1001  Cash [asset]")
}

func TestImport_ApplyWritesAuditLog(t *testing.T) {
	dir := initWorkspace(t)
	file := writeImportCSV(t, dir)

	_, err := runCLI(t, "import", file, "--dir", dir, "--apply", "--add", "1003")
	require.NoError(t, err)

	entries, err := audit.Read(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "import-apply", last.Action)
	assert.Equal(t, "client-1", last.ClientID)
	assert.NotEmpty(t, last.SessionID)
}

func TestImport_RejectsBadFile(t *testing.T) {
	dir := initWorkspace(t)
	file := filepath.Join(dir, "import", "bad.csv")
	require.NoError(t, os.WriteFile(file, []byte("Code,Name,Type\n,Missing Code,asset\n"), 0o644))

	_, err := runCLI(t, "import", file, "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestExportAndTemplate(t *testing.T) {
	dir := initWorkspace(t)

	exportPath := filepath.Join(dir, "exports", "chart.xlsx")
	out, err := runCLI(t, "export", exportPath, "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 10 accounts")
	_, err = os.Stat(exportPath)
	require.NoError(t, err)

	templatePath := filepath.Join(dir, "exports", "template.xlsx")
	_, err = runCLI(t, "template", templatePath, "--dir", dir)
	require.NoError(t, err)
	_, err = os.Stat(templatePath)
	require.NoError(t, err)
}

// writeImportCSV produces a file with one renamed account (Cash) and one new
// account (Petty Cash) against the seeded sample chart.
func writeImportCSV(t *testing.T, dir string) string {
	t.Helper()
	rows := "Id,Code,Name,Type\n" +
		"1,1001,Cash in Bank,asset\n" +
		",1003,Petty Cash,asset\n"
	path := filepath.Join(dir, "import", "chart.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}
