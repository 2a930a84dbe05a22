package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save scan settings",
	Long: `Shows the effective scan settings: defaults, overridden by the config
file, overridden by flags.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write effective settings to the config file",
	Long: `Writes the effective settings to the config file so later runs use
them without flags. Example:

  kwscan config save --workers 4 --match-mode word --format csv`,
	RunE: runConfigSave,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	service, err := openSettings(cmd)
	if err != nil {
		return err
	}
	settings, err := service.Get()
	if err != nil {
		return err
	}

	logFile := settings.LogFile
	if logFile == "" {
		logFile = "(output directory)/process.log"
	}
	timeout := settings.FileTimeout.String()
	if settings.FileTimeout == 0 {
		timeout = "disabled"
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Printf("  %s%d\n", labelStyle.Render("Workers"), settings.Workers)
	cmd.Printf("  %s%s\n", labelStyle.Render("File timeout"), timeout)
	cmd.Printf("  %s%s\n", labelStyle.Render("Match mode"), settings.MatchMode.Description())
	cmd.Printf("  %s%s\n", labelStyle.Render("Table format"), settings.TableFormat)
	cmd.Printf("  %s%s\n", labelStyle.Render("Log file"), logFile)
	return nil
}

func runConfigSave(cmd *cobra.Command, _ []string) error {
	service, err := openSettings(cmd)
	if err != nil {
		return err
	}
	settings, err := service.Get()
	if err != nil {
		return err
	}
	if err := service.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}
