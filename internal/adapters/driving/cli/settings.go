package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
)

// openSettings opens the configured settings with changed flags layered on top.
func openSettings(cmd *cobra.Command) (driving.SettingsService, error) {
	if cliConfig == nil || cliConfig.OpenSettings == nil {
		return nil, errors.New("settings not configured")
	}

	settings, err := cliConfig.OpenSettings(configPath, flagOverrides(cmd))
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	return settings, nil
}

// flagOverrides returns config values for every flag set on the command line.
func flagOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)
	flags := cmd.Flags()

	if flags.Changed("workers") {
		overrides[domain.ConfigKeyWorkers] = workersFlag
	}
	if flags.Changed("timeout") {
		overrides[domain.ConfigKeyFileTimeout] = timeoutFlag
	}
	if flags.Changed("match-mode") {
		overrides[domain.ConfigKeyMatchMode] = matchModeFlag
	}
	if flags.Changed("format") {
		overrides[domain.ConfigKeyTableFormat] = formatFlag
	}
	if flags.Changed("log-file") {
		overrides[domain.ConfigKeyLogFile] = logFileFlag
	}
	return overrides
}
