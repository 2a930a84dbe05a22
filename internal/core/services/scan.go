package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
	"github.com/custodia-labs/kwscan/internal/logger"
)

// Ensure ScanService implements the interface.
var _ driving.Scanner = (*ScanService)(nil)

const fileScheme = "file://"

// ScanService runs the extract, match and aggregate pipeline.
type ScanService struct {
	lister     driven.FileLister
	rules      driven.RulesSource
	dispatcher driven.Dispatcher
	writer     driven.ReportWriter

	now      func() time.Time
	newRunID func() string
}

// NewScanService creates a new scan service.
func NewScanService(
	lister driven.FileLister,
	rules driven.RulesSource,
	dispatcher driven.Dispatcher,
	writer driven.ReportWriter,
) *ScanService {
	return &ScanService{
		lister:     lister,
		rules:      rules,
		dispatcher: dispatcher,
		writer:     writer,
		now:        time.Now,
		newRunID:   func() string { return uuid.New().String() },
	}
}

// Scan processes every file below req.Directory and writes the artifacts.
//
// Listing and rules failures abort the run before any document is read.
// Per-document failures are recorded and the run continues. Cancelling
// ctx stops the run between documents and no artifacts are written.
func (s *ScanService) Scan(ctx context.Context, req driving.ScanRequest) (*driving.ScanResult, error) {
	settings := req.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if req.OutputDir == "" {
		return nil, fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}

	started := s.now()
	inputPath := strings.TrimPrefix(req.Directory, fileScheme)

	logger.Section("Scan")
	logger.Info("Input: %s", inputPath)
	logger.Info("Rules: %s", req.RulesPath)
	logger.Info("Output: %s", req.OutputDir)

	paths, err := s.lister.List(ctx, inputPath)
	if err != nil {
		logger.Error("Cannot list input directory: %v", err)
		return nil, fmt.Errorf("list input: %w", err)
	}
	paths = withoutExcluded(paths, inputPath, req.OutputDir, req.Exclude)
	if len(paths) == 0 {
		logger.Error("No files found in %s", inputPath)
		return nil, fmt.Errorf("%w: %s", domain.ErrInputDirEmpty, inputPath)
	}

	keywords, err := s.rules.Load(ctx, req.RulesPath)
	if err != nil {
		logger.Error("Cannot load rules: %v", err)
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if keywords.IsEmpty() {
		logger.Warn("Keyword set is empty; no file can match")
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	logger.Info("Scanning %d files for %d keywords (workers=%d, mode=%s)",
		len(paths), keywords.Len(), settings.Workers, settings.MatchMode)

	agg := NewAggregator(keywords)
	matcher := NewMatcher(settings.MatchMode)
	progress := newProgress(req.Progress, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(settings.Workers)
	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.process(gctx, path, keywords, matcher, agg, settings.FileTimeout)
			progress.step()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("Scan aborted: %v", err)
		return nil, fmt.Errorf("scan aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("Scan aborted: %v", err)
		return nil, fmt.Errorf("scan aborted: %w", err)
	}

	report := agg.Finalize()
	report.RunID = s.newRunID()
	report.StartedAt = started
	report.FinishedAt = s.now()
	report.InputPath = inputPath
	report.OutputPath = req.OutputDir
	report.RulesPath = req.RulesPath

	logger.Info("Processed %d files: %d matched, %d unmatched, %d without text",
		len(report.Processed), len(report.Matched), len(report.Unmatched), len(report.Failures))

	artifacts, err := s.writer.Write(ctx, report, settings.TableFormat, req.OutputDir)
	if err != nil {
		logger.Error("Cannot write report: %v", err)
		return nil, fmt.Errorf("write report: %w", err)
	}

	return &driving.ScanResult{Report: report, Artifacts: artifacts}, nil
}

// process dispatches, extracts, matches and records one document.
func (s *ScanService) process(
	ctx context.Context,
	path string,
	keywords domain.KeywordSet,
	matcher *Matcher,
	agg *Aggregator,
	timeout time.Duration,
) {
	decision := s.dispatcher.Dispatch(path)
	if decision.Skipped() {
		agg.RecordUnextracted(path, domain.Skipped(decision.SkipReason))
		return
	}

	outcome := extractWithTimeout(ctx, decision, timeout)
	if !outcome.OK() {
		logger.Warn("No text from %s (%s): %s", path, outcome.Status, outcome.Reason)
		agg.RecordUnextracted(path, outcome)
		return
	}

	logger.Debug("Extracted %d bytes from %s via %s", len(outcome.Text), path, outcome.Method)
	agg.Record(path, outcome.Method, matcher.Match(outcome.Text, keywords))
}

// extractWithTimeout runs the extractor and gives up when ctx or the
// per-file timeout expires. A parser that ignores ctx keeps running in
// its goroutine but its result is discarded.
func extractWithTimeout(ctx context.Context, decision driven.Decision, timeout time.Duration) domain.ExtractedText {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	name := decision.Extractor.Name()
	done := make(chan domain.ExtractedText, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.Failed(name, fmt.Errorf("extractor panic: %v", r))
			}
		}()
		done <- decision.Extractor.Extract(ctx, decision.Document)
	}()

	select {
	case outcome := <-done:
		return outcome
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Failed(name, fmt.Errorf("extraction timed out after %s", timeout))
		}
		return domain.Failed(name, ctx.Err())
	}
}

// progress serialises calls to a ProgressFunc.
type progress struct {
	mu    sync.Mutex
	fn    driving.ProgressFunc
	done  int
	total int
}

func newProgress(fn driving.ProgressFunc, total int) *progress {
	return &progress{fn: fn, total: total}
}

func (p *progress) step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.fn != nil {
		p.fn(p.done, p.total)
	}
}

// withoutExcluded drops listed files that are excluded paths or lie below
// an excluded directory. The output directory counts as excluded unless it
// is the input root itself.
func withoutExcluded(paths []string, root, outputDir string, exclude []string) []string {
	var prefixes []string
	add := func(p string) {
		if p == "" {
			return
		}
		if abs, err := filepath.Abs(p); err == nil {
			prefixes = append(prefixes, abs)
		}
	}

	rootAbs, rootErr := filepath.Abs(root)
	if outAbs, err := filepath.Abs(outputDir); err == nil && (rootErr != nil || outAbs != rootAbs) {
		add(outAbs)
	}
	for _, p := range exclude {
		add(p)
	}
	if len(prefixes) == 0 {
		return paths
	}

	kept := paths[:0:0]
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err == nil && excluded(abs, prefixes) {
			logger.Debug("Excluded from scan: %s", path)
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

func excluded(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
