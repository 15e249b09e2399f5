package commands

import (
	"fmt"
	"os"

	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/ncobase/nodesearch/validator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Aliases: []string{"m"},
		Short:   "Create the node tables",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, *configFile, openOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration completed")
			return nil
		},
	}
}

// importNode is the file format of imported nodes
type importNode struct {
	Identifier string         `yaml:"identifier"`
	Path       string         `yaml:"path" validate:"required,startswith=/"`
	NodeType   string         `yaml:"nodeType" validate:"required"`
	Properties map[string]any `yaml:"properties"`
}

func newImportCommand(configFile *string) *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import nodes from a YAML or JSON list into the node store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var items []importNode
			if err := yaml.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			for i := range items {
				if err := validator.Struct(&items[i]); err != nil {
					return fmt.Errorf("%s: node %d: %w", args[0], i, err)
				}
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, *configFile, openOptions{database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if workspace == "" {
				workspace = a.cfg.NodeSearch.DefaultWorkspace
			}

			nodes := make([]*nodesearch.Node, len(items))
			for i, item := range items {
				nodes[i] = &nodesearch.Node{
					Identifier: item.Identifier,
					Path:       item.Path,
					NodeType:   item.NodeType,
					Properties: item.Properties,
				}
			}
			if err := a.store.Save(ctx, workspace, nodes...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes into workspace %s\n", len(nodes), workspace)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace name (default from config)")
	return cmd
}
