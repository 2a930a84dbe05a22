// Command kwscan scans a directory of documents for keywords.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/kwscan/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kwscan/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/kwscan/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/kwscan/internal/adapters/driven/report"
	"github.com/custodia-labs/kwscan/internal/adapters/driven/rules"
	"github.com/custodia-labs/kwscan/internal/adapters/driving/cli"
	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
	"github.com/custodia-labs/kwscan/internal/core/services"
	"github.com/custodia-labs/kwscan/internal/extractors"
	"github.com/custodia-labs/kwscan/internal/logger"
)

func main() {
	registry := extractors.NewDefaultRegistry()

	scanner := services.NewScanService(
		filesystem.NewLister(),
		rules.NewLoader(),
		registry,
		report.NewWriter(),
	)

	cli.SetConfig(&cli.Config{
		Scanner:      scanner,
		OpenSettings: openSettings,
		Formats:      registry.ByExtractor(),
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSettings layers command-line overrides over the TOML config file.
func openSettings(path string, overrides map[string]any) (driving.SettingsService, error) {
	base, err := file.NewConfigStore(path)
	if err != nil {
		return nil, err
	}

	overlay := memory.NewOverlay(base)
	for key, value := range overrides {
		if err := overlay.Set(key, value); err != nil {
			return nil, fmt.Errorf("apply %s: %w", key, err)
		}
	}
	logger.Debug("Using config %s", base.Path())
	return services.NewSettingsService(overlay), nil
}
