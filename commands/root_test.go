package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-eld-log/internal/testing/fixtures"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Value.Type() != "stringSlice" {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.LocalFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
	dates = nil
}

// execute runs the CLI in-process with an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"ELD_TIMEZONE", "ELD_DATA_DIR", "ELD_DB_DSN", "ELD_TRIP_ID", "ELD_SERVER_ADDR", "ELD_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func tripDir(t *testing.T, days int) string {
	t.Helper()
	dir := t.TempDir()
	_, err := fixtures.NewTestDataGenerator(dir, nil).GenerateTrip("trip", "2025-06-10", days)
	require.NoError(t, err)
	return dir
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	abs, _ := filepath.Abs("relative/path")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"home directory expansion", "~/test/path", filepath.Join(home, "test/path")},
		{"absolute path unchanged", "/absolute/path", "/absolute/path"},
		{"relative path converted to absolute", "relative/path", abs},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	require.NoError(t, ensureDir(testDir))
	info, err := os.Stat(testDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	assert.NoError(t, ensureDir(testDir))
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		flag         string
		defaultValue string
		shorthand    string
	}{
		{"dir", "", ""},
		{"db", "", ""},
		{"trip", "0", ""},
		{"duration", "", "d"},
		{"output", "", "o"},
		{"timezone", "", ""},
		{"date", "[]", ""},
		{"strict-totals", "false", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
			if tt.shorthand != "" {
				assert.Equal(t, tt.shorthand, flag.Shorthand)
			}
		})
	}

	for _, name := range []string{"watch", "serve", "import"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRender_Table(t *testing.T) {
	dir := tripDir(t, 2)

	out, err := execute(t, "--dir", dir, "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-10")
	assert.Contains(t, out, "2025-06-11")
	assert.Regexp(t, `Total\s+│\s+18\.00 │\s+2\.00 │\s+20\.00 │\s+15\.00 │\s+13\.00 │`, out)
}

func TestRender_JSONSingleDate(t *testing.T) {
	dir := tripDir(t, 3)

	out, err := execute(t, "--dir", dir, "--timezone", "UTC", "-o", "json", "--date", "2025-06-11")
	require.NoError(t, err)

	var days []struct {
		Date    string `json:"date"`
		Remarks []struct {
			Text string `json:"text"`
		} `json:"remarks"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(out), &days))
	require.Len(t, days, 1)
	assert.Equal(t, "2025-06-11", days[0].Date)
	require.Len(t, days[0].Remarks, 2)
	assert.Equal(t, "REST at 11:00: Wichita Falls, TX", days[0].Remarks[0].Text)
	assert.Equal(t, "FUEL at 16:00: Amarillo, TX", days[0].Remarks[1].Text)
}

func TestRender_GraphRange(t *testing.T) {
	dir := tripDir(t, 3)

	out, err := execute(t, "--dir", dir, "--timezone", "UTC", "-o", "graph", "--no-color", "--width", "120",
		"--from", "2025-06-11", "--to", "2025-06-11")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-06-11  Driver's Daily Log (24h)")
	assert.NotContains(t, out, "2025-06-10")
	assert.Contains(t, out, "SLEEPER")
	assert.Contains(t, out, "Odo: 125,540")
}

func TestRender_ConfigFile(t *testing.T) {
	dir := tripDir(t, 1)
	configFile := filepath.Join(t.TempDir(), "config.toml")
	doc := "timezone = \"UTC\"\n\n[data]\ndir = \"" + dir + "\"\n\n[output]\nformat = \"csv\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(doc), 0644))

	out, err := execute(t, "--config", configFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "2025-06-10,9.00,1.00,10.00,7.50,6.50,"))
}

func TestRender_Errors(t *testing.T) {
	dir := tripDir(t, 1)

	_, err := execute(t, "--dir", dir, "-o", "pdf")
	assert.ErrorContains(t, err, "unsupported output format")

	_, err = execute(t, "--dir", dir, "--timezone", "Nowhere/Special")
	assert.ErrorContains(t, err, "invalid timezone")

	_, err = execute(t, "--dir", t.TempDir(), "--timezone", "UTC")
	assert.ErrorContains(t, err, "no log files found")

	_, err = execute(t, "--dir", dir, "--timezone", "UTC", "--date", "2030-01-01")
	assert.ErrorContains(t, err, "no log days match")
}

func TestImportThenRenderFromDatabase(t *testing.T) {
	dir := tripDir(t, 2)
	dbPath := filepath.Join(t.TempDir(), "eld.db")

	out, err := execute(t, "import", "--dir", dir, "--db", dbPath, "--trip", "42", "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 14 records into trip 42 (0 skipped)")

	out, err = execute(t, "--db", dbPath, "--trip", "42", "--timezone", "UTC", "-o", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[2], "2025-06-11,9.00,1.00,10.00,7.50,6.50,"))

	_, err = execute(t, "--db", dbPath, "--trip", "7", "--timezone", "UTC")
	assert.ErrorContains(t, err, "no log days match")
}

func TestImport_Validation(t *testing.T) {
	dir := tripDir(t, 1)

	_, err := execute(t, "import", "--dir", dir)
	assert.ErrorContains(t, err, "needs a database")

	_, err = execute(t, "import", "--dir", dir, "--db", filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorContains(t, err, "positive --trip")
}

func TestWatch_RejectsDatabase(t *testing.T) {
	_, err := execute(t, "watch", "--db", filepath.Join(t.TempDir(), "x.db"))
	assert.ErrorContains(t, err, "only supports file sources")
}
