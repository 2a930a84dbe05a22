package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Required scan flag values.
var (
	scanDirectory string
	scanRules     string
	scanOutput    string
)

// isTerminal reports whether the progress bar should be drawn.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func runScan(cmd *cobra.Command, _ []string) error {
	if cliConfig == nil || cliConfig.Scanner == nil {
		return errors.New("scan service not configured")
	}
	if missing := missingScanFlags(); len(missing) > 0 {
		return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}

	settingsService, err := openSettings(cmd)
	if err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(scanOutput, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	logPath := settings.LogFile
	if logPath == "" {
		logPath = filepath.Join(scanOutput, "process.log")
	}
	if err := logger.Init(logPath); err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	logger.SetVerbose(verboseFlag)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	req := driving.ScanRequest{
		Directory: scanDirectory,
		RulesPath: scanRules,
		OutputDir: scanOutput,
		Exclude:   []string{logPath},
		Settings:  settings,
	}

	var bar *progressBar
	if isTerminal() {
		bar = newProgressBar(cmd.ErrOrStderr())
		req.Progress = bar.update
	}

	result, err := cliConfig.Scanner.Scan(ctx, req)
	if bar != nil {
		bar.finish()
	}
	if err != nil {
		logger.Error("Scan failed: %v", err)
		return err
	}

	renderSummary(cmd.OutOrStdout(), result, logPath)
	return nil
}

func missingScanFlags() []string {
	var missing []string
	if scanDirectory == "" {
		missing = append(missing, `"directory"`)
	}
	if scanRules == "" {
		missing = append(missing, `"rules"`)
	}
	if scanOutput == "" {
		missing = append(missing, `"output"`)
	}
	return missing
}

// progressBar draws scan progress on a terminal.
type progressBar struct {
	mu    sync.Mutex
	w     io.Writer
	model progress.Model
	drawn bool
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{
		w:     w,
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *progressBar) update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	fmt.Fprintf(p.w, "\rScanning %s %d/%d files", p.model.ViewAs(percent), done, total)
	p.drawn = true
}

func (p *progressBar) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.drawn {
		fmt.Fprintln(p.w)
	}
}
