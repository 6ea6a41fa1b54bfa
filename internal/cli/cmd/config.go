package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/cli"
	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/infrastructure/config"
	"github.com/bnema/docking/internal/infrastructure/persistence/sqlite"
)

var (
	configJSON    bool
	configSection string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the effective configuration, the documented keys and the JSON Schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults, the config file and DOCKING_* environment overrides are merged.`,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys with defaults and ranges",
	RunE:  runConfigKeys,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	RunE:  runConfigSchema,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show where the config file and database live",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configKeysCmd, configSchemaCmd, configPathCmd)

	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	configKeysCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	configKeysCmd.Flags().StringVar(&configSection, "section", "", "only show keys of one section (Logging, Database, Docking, Dockables)")
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	if configJSON {
		out, err := marshalIndent(a.Config)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	out, err := config.EncodeTOML(a.Config)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runConfigKeys(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	result, err := a.ConfigSchemaUC.Execute(a.Ctx(), usecase.GetConfigSchemaInput{Section: configSection})
	if err != nil {
		return err
	}

	renderer := styles.NewConfigSchemaRenderer(a.Theme)
	if configJSON {
		out, err := renderer.RenderJSON(result.Keys)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(renderer.Render(result.Keys))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.GenerateJSONSchema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	configFile, err := config.GetConfigFile()
	if err != nil {
		return err
	}

	iconStyle := lipgloss.NewStyle().Foreground(a.Theme.Accent)
	label := a.Theme.Subtle.Width(10)
	fmt.Printf("%s %s%s\n", iconStyle.Render(styles.IconConfig), label.Render("config"), a.Theme.Normal.Render(configFile))
	fmt.Printf("%s %s%s\n", iconStyle.Render(styles.IconDatabase), label.Render("database"), a.Theme.Normal.Render(a.DB.Path()))
	if _, statErr := os.Stat(a.DB.Path()); statErr == nil {
		version, versionErr := schemaVersion(a)
		if versionErr != nil {
			return versionErr
		}
		fmt.Printf("  %s%s\n", label.Render("schema"), a.Theme.Subtle.Render(fmt.Sprintf("v%d", version)))
	}
	if a.ConfigManager == nil {
		fmt.Println(a.Theme.WarningStyle.Render(styles.IconWarning + " config file could not be loaded, defaults in use"))
	}
	return nil
}

func schemaVersion(a *cli.App) (int64, error) {
	db, err := a.DB.DB(a.Ctx())
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	return sqlite.GetMigrationStatus(db)
}
