package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/domain/entity"
)

var pathsJSON bool

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Inspect stored docking paths",
	Long:  `List or forget the docking paths captured when dockables were last docked.`,
}

var pathsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored docking paths",
	RunE:    runPathsList,
}

var pathsDeleteCmd = &cobra.Command{
	Use:     "delete <dockable-id>...",
	Aliases: []string{"rm"},
	Short:   "Forget the docking path of one or more dockables",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runPathsDelete,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.AddCommand(pathsListCmd, pathsDeleteCmd)
	pathsListCmd.Flags().BoolVar(&pathsJSON, "json", false, "output as JSON")
}

func runPathsList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	paths, err := a.Paths.List(a.Ctx())
	if err != nil {
		return fmt.Errorf("list docking paths: %w", err)
	}

	if pathsJSON {
		out, err := marshalIndent(paths)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Println(styles.NewPathsRenderer(a.Theme).Render(paths))
	return nil
}

func runPathsDelete(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewPathsRenderer(a.Theme)
	for _, arg := range args {
		id := entity.DockableID(arg)
		if err := a.Paths.Delete(a.Ctx(), id); err != nil {
			return fmt.Errorf("delete docking path %s: %w", id, err)
		}
		fmt.Println(renderer.RenderDeleted(id))
	}
	return nil
}
