package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Config holds the services the commands run against.
type Config struct {
	// Scanner runs a scan.
	Scanner driving.Scanner

	// OpenSettings opens the config file at path (empty for the default
	// location) with overrides layered on top of it.
	OpenSettings func(path string, overrides map[string]any) (driving.SettingsService, error)

	// Formats maps extractor names to the extensions they handle.
	Formats map[string][]string
}

// cliConfig holds the current configuration.
var cliConfig *Config

// SetConfig sets the configuration for all commands.
func SetConfig(config *Config) {
	cliConfig = config
}

// Persistent flag values.
var (
	configPath    string
	workersFlag   int
	timeoutFlag   string
	matchModeFlag string
	formatFlag    string
	logFileFlag   string
	verboseFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "kwscan -d DIR -r RULES -o OUT",
	Short: "Scan documents for keywords",
	Long: `kwscan walks a directory tree, extracts text from every supported
document and checks it against the keywords column of a rules table.

Two artifacts are written to the output directory: a results table with
one row per (file, keyword) pair and a JSON summary of matched and
unmatched files. Run 'kwscan formats' to list supported file types.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runScan,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&scanDirectory, "directory", "d", "", "directory to scan (required)")
	flags.StringVarP(&scanRules, "rules", "r", "", "rules table (.csv, .xlsx, .xls) with a keywords column (required)")
	flags.StringVarP(&scanOutput, "output", "o", "", "output directory, created if absent (required)")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configPath, "config", "", "config file (default ~/.kwscan/config.toml)")
	persistent.IntVar(&workersFlag, "workers", 0, "concurrent extractions (default number of CPUs)")
	persistent.StringVar(&timeoutFlag, "timeout", "", "per-file extraction timeout, e.g. 90s (0 disables)")
	persistent.StringVar(&matchModeFlag, "match-mode", "", "keyword matching: substring or word")
	persistent.StringVar(&formatFlag, "format", "", "results table format: xlsx or csv")
	persistent.StringVar(&logFileFlag, "log-file", "", "log file (default <output>/process.log)")
	persistent.BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output")
}
