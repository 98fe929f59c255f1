package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/kerbaras/bookshelf/pkg/config"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag of c and its subcommands back to its default,
// since the commands are package globals shared by all tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setTestEnv points the configuration at a clean environment.
func setTestEnv(t *testing.T, dir string) {
	t.Helper()

	t.Setenv("BOOKSHELF_FILE", filepath.Join(dir, "library.xlsx"))
	t.Setenv("BOOKSHELF_BACKEND", config.BackendXLSX)
	t.Setenv("BOOKSHELF_DUPLICATES", string(services.DuplicatesAllow))
	t.Setenv("BOOKSHELF_COVERS_DIR", filepath.Join(dir, "covers"))
	t.Setenv("BOOKSHELF_LOG_LEVEL", "error")
	t.Setenv("BOOKSHELF_LOG_FILE", "")
	t.Setenv("BOOKSHELF_OPENLIBRARY_URL", "http://127.0.0.1:0")
}

// execute runs the CLI and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	catalog = nil
	startupNotice = ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	setTestEnv(t, dir)
	t.Setenv("BOOKSHELF_BACKEND", config.BackendDuckDB)
	t.Setenv("BOOKSHELF_LOG_LEVEL", "warn")

	flagFile := filepath.Join(dir, "flagged.xlsx")
	require.NoError(t, data.NewXLSXStorage(flagFile).Save([]data.Book{
		data.NewPhysical("Dune", "Frank Herbert", 1965, 412, 800),
	}))

	out, _, err := execute(t, "find", "dune",
		"--file", flagFile,
		"--backend", "xlsx",
		"--duplicates", "reject",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Title: Dune")
	assert.Equal(t, flagFile, cfg.File)
	assert.Equal(t, config.BackendXLSX, cfg.Backend)
	assert.Equal(t, services.DuplicatesReject, cfg.Duplicates)
	// not given as a flag, so the environment wins
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "covers"), cfg.CoversDir)
}

func TestEnvironmentWithoutFlags(t *testing.T) {
	dir := t.TempDir()
	setTestEnv(t, dir)
	t.Setenv("BOOKSHELF_BACKEND", config.BackendMemory)
	t.Setenv("BOOKSHELF_DUPLICATES", string(services.DuplicatesReject))

	// an earlier run must not leave its flags behind
	_, _, err := execute(t, "find", "x", "--backend", "xlsx", "--log-level", "debug")
	require.NoError(t, err)

	out, _, err := execute(t, "find", "Dune")
	require.NoError(t, err)

	assert.Equal(t, "❌ Book 'Dune' not found.\n", out)
	assert.Equal(t, config.BackendMemory, cfg.Backend)
	assert.Equal(t, services.DuplicatesReject, cfg.Duplicates)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Contains(t, startupNotice, "No catalog found")
}

func TestInvalidFlagValues(t *testing.T) {
	setTestEnv(t, t.TempDir())

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"find", "Dune", "--backend", "postgres"}, "unknown backend"},
		{[]string{"find", "Dune", "--duplicates", "sometimes"}, "sometimes"},
		{[]string{"find", "Dune", "--log-level", "loud"}, "unknown log level"},
	}

	for _, tt := range tests {
		_, _, err := execute(t, tt.args...)
		require.Error(t, err, "%v", tt.args)
		assert.Contains(t, err.Error(), tt.want)
	}
}

func TestLogsGoToCommandErrorOutput(t *testing.T) {
	setTestEnv(t, t.TempDir())

	_, logs, err := execute(t, "find", "Dune", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, logs, "catalog storage missing")

	_, logs, err = execute(t, "find", "Dune")
	require.NoError(t, err)
	assert.NotContains(t, logs, "catalog storage missing")
}

func TestAddLoanAndReturn(t *testing.T) {
	dir := t.TempDir()
	setTestEnv(t, dir)
	path := filepath.Join(dir, "library.xlsx")

	out, _, err := execute(t, "add", "Dune",
		"--author", "Frank Herbert", "--year", "1965", "--pages", "412", "--weight", "800")
	require.NoError(t, err)
	assert.Equal(t, "✅ Book 'Dune' has been added (physical).\n", out)

	out, _, err = execute(t, "loan", "dune")
	require.NoError(t, err)
	assert.Equal(t, "✅ Book 'dune' has been loaned.\n", out)

	out, _, err = execute(t, "loan", "Dune")
	require.NoError(t, err)
	assert.Equal(t, "❌ Book 'Dune' is not available for loan.\n", out)

	books, err := data.NewXLSXStorage(path).Load()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, data.StatusLoaned, books[0].Status)

	out, _, err = execute(t, "edit", "Dune", "--year", "1966")
	require.NoError(t, err)
	assert.Equal(t, "✅ Book 'Dune' has been updated.\n", out)

	out, _, err = execute(t, "return", "Dune")
	require.NoError(t, err)
	assert.Equal(t, "✅ Book 'Dune' has been returned.\n", out)

	books, err = data.NewXLSXStorage(path).Load()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 1966, books[0].YearPublished)
	assert.Equal(t, data.StatusAvailable, books[0].Status)
}

func TestEditKeepsLoanStatus(t *testing.T) {
	dir := t.TempDir()
	setTestEnv(t, dir)
	path := filepath.Join(dir, "library.xlsx")

	dune := data.NewPhysical("Dune", "Frank Herbert", 1965, 412, 800)
	dune.Status = data.StatusLoaned
	require.NoError(t, data.NewXLSXStorage(path).Save([]data.Book{dune}))

	_, _, err := execute(t, "edit", "dune", "--title", "Dune (Deluxe)", "--pages", "500")
	require.NoError(t, err)

	books, err := data.NewXLSXStorage(path).Load()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune (Deluxe)", books[0].Title)
	assert.Equal(t, dune.ID, books[0].ID)
	assert.Equal(t, data.StatusLoaned, books[0].Status)
}
