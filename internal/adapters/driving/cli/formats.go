package cli

import (
	"errors"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file types",
	Long: `Lists the file extensions kwscan extracts text from, grouped by
extractor. Files with any other extension are recorded as skipped.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if cliConfig == nil || len(cliConfig.Formats) == 0 {
		return errors.New("no extractors configured")
	}

	names := make([]string, 0, len(cliConfig.Formats))
	for name := range cliConfig.Formats {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Println(titleStyle.Render("Supported formats"))
	for _, name := range names {
		cmd.Printf("  %s%s\n", labelStyle.Render(name), strings.Join(cliConfig.Formats[name], " "))
	}
	return nil
}
