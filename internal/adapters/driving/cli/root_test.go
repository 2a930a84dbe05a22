package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
)

// mockScanner implements driving.Scanner for testing.
type mockScanner struct {
	req    driving.ScanRequest
	calls  int
	result *driving.ScanResult
	err    error
}

func (m *mockScanner) Scan(_ context.Context, req driving.ScanRequest) (*driving.ScanResult, error) {
	m.calls++
	m.req = req
	return m.result, m.err
}

// mockSettings implements driving.SettingsService for testing.
type mockSettings struct {
	settings domain.ScanSettings
	getErr   error
	saved    *domain.ScanSettings
}

func (m *mockSettings) Get() (domain.ScanSettings, error) { return m.settings, m.getErr }
func (m *mockSettings) GetDefaults() domain.ScanSettings  { return domain.DefaultScanSettings() }
func (m *mockSettings) Save(s domain.ScanSettings) error {
	m.saved = &s
	return nil
}

type testEnv struct {
	scanner   *mockScanner
	settings  *mockSettings
	path      string
	overrides map[string]any
}

func setupCLITest(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		scanner: &mockScanner{result: sampleResult()},
		settings: &mockSettings{settings: domain.ScanSettings{
			Workers: 2, FileTimeout: time.Minute,
			MatchMode: domain.MatchModeSubstring, TableFormat: domain.TableFormatXLSX,
		}},
	}

	oldConfig := cliConfig
	oldTerminal := isTerminal
	SetConfig(&Config{
		Scanner: env.scanner,
		OpenSettings: func(path string, overrides map[string]any) (driving.SettingsService, error) {
			env.path = path
			env.overrides = overrides
			return env.settings, nil
		},
		Formats: map[string][]string{"pdf": {".pdf"}, "spreadsheet": {".csv", ".xls", ".xlsx"}},
	})
	isTerminal = func() bool { return false }

	t.Cleanup(func() {
		cliConfig = oldConfig
		isTerminal = oldTerminal
		resetFlags()
		rootCmd.SetArgs(nil)
	})
	return env
}

// resetFlags restores every flag to its default between executions.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, sub := range rootCmd.Commands() {
		sub.Flags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleResult() *driving.ScanResult {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &driving.ScanResult{
		Report: &domain.Report{
			StartedAt:  start,
			FinishedAt: start.Add(1500 * time.Millisecond),
			Keywords:   []string{"invoice", "rejected"},
			Processed:  []string{"/in/a.txt", "/in/b.bmp"},
			Matched:    []string{"/in/a.txt"},
			Unmatched:  []string{"/in/b.bmp"},
			Failures:   map[string]string{"/in/b.bmp": "unsupported format"},
		},
		Artifacts: domain.Artifacts{
			TablePath:   "/out/search_results.xlsx",
			SummaryPath: "/out/summary.json",
		},
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "kwscan", rootCmd.Name())
}

func TestRootCmd_RequiresFlags(t *testing.T) {
	env := setupCLITest(t)

	_, err := execute(t, "-d", "/in")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"rules"`)
	assert.Contains(t, err.Error(), `"output"`)
	assert.Equal(t, 0, env.scanner.calls)
}

func TestRootCmd_RunsScan(t *testing.T) {
	env := setupCLITest(t)
	out := t.TempDir()

	stdout, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", out)

	require.NoError(t, err)
	assert.Equal(t, 1, env.scanner.calls)
	assert.Equal(t, "/in", env.scanner.req.Directory)
	assert.Equal(t, "rules.csv", env.scanner.req.RulesPath)
	assert.Equal(t, out, env.scanner.req.OutputDir)
	assert.Equal(t, env.settings.settings, env.scanner.req.Settings)
	assert.Nil(t, env.scanner.req.Progress)
	assert.Equal(t, []string{filepath.Join(out, "process.log")}, env.scanner.req.Exclude)
	assert.Empty(t, env.overrides)

	assert.Contains(t, stdout, "Scan complete")
	assert.Contains(t, stdout, "Files processed")
	assert.Contains(t, stdout, "Without text")
	assert.Contains(t, stdout, "/out/search_results.xlsx")
	assert.Contains(t, stdout, filepath.Join(out, "process.log"))
	assert.FileExists(t, filepath.Join(out, "process.log"))
}

func TestRootCmd_FlagsBecomeOverrides(t *testing.T) {
	env := setupCLITest(t)

	_, err := execute(t,
		"-d", "/in", "-r", "rules.xlsx", "-o", t.TempDir(),
		"--config", "/etc/kwscan.toml",
		"--workers", "3", "--timeout", "45s", "--match-mode", "word", "--format", "csv",
	)

	require.NoError(t, err)
	assert.Equal(t, "/etc/kwscan.toml", env.path)
	assert.Equal(t, map[string]any{
		domain.ConfigKeyWorkers:     3,
		domain.ConfigKeyFileTimeout: "45s",
		domain.ConfigKeyMatchMode:   "word",
		domain.ConfigKeyTableFormat: "csv",
	}, env.overrides)
}

func TestRootCmd_LogFileSetting(t *testing.T) {
	env := setupCLITest(t)
	logPath := filepath.Join(t.TempDir(), "custom.log")
	env.settings.settings.LogFile = logPath

	stdout, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", t.TempDir())

	require.NoError(t, err)
	assert.FileExists(t, logPath)
	assert.Contains(t, stdout, logPath)
	assert.Equal(t, []string{logPath}, env.scanner.req.Exclude)
}

func TestRootCmd_ScanError(t *testing.T) {
	env := setupCLITest(t)
	env.scanner.result = nil
	env.scanner.err = errors.New("no files found in input directory")

	_, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files found")
}

func TestRootCmd_SettingsError(t *testing.T) {
	env := setupCLITest(t)
	env.settings.getErr = domain.ErrInvalidInput

	_, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, env.scanner.calls)
}

func TestRootCmd_NotConfigured(t *testing.T) {
	setupCLITest(t)
	cliConfig = nil

	_, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRootCmd_ProgressOnTerminal(t *testing.T) {
	env := setupCLITest(t)
	isTerminal = func() bool { return true }

	_, err := execute(t, "-d", "/in", "-r", "rules.csv", "-o", t.TempDir())

	require.NoError(t, err)
	assert.NotNil(t, env.scanner.req.Progress)
}

func TestProgressBar(t *testing.T) {
	buf := new(bytes.Buffer)
	bar := newProgressBar(buf)

	bar.update(1, 4)
	bar.update(4, 4)
	bar.finish()

	assert.Contains(t, buf.String(), "1/4 files")
	assert.Contains(t, buf.String(), "4/4 files")
	assert.Contains(t, buf.String(), "100%")
}

func TestRenderSummary_OmitsEmptyFailures(t *testing.T) {
	result := sampleResult()
	result.Report.Failures = nil
	buf := new(bytes.Buffer)

	renderSummary(buf, result, "/out/process.log")

	assert.NotContains(t, buf.String(), "Without text")
	assert.Contains(t, buf.String(), "1.5s")
}
