package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/spf13/cobra"
)

func newSearchCommand(configFile *string) *cobra.Command {
	var (
		term          string
		nodeTypes     []string
		startingPoint string
		workspace     string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a single node search and print the nodes as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, *configFile, openOptions{search: true, database: true})
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.newService(ctx, a.cfg)
			if err != nil {
				return err
			}

			if workspace == "" {
				workspace = a.cfg.NodeSearch.DefaultWorkspace
			}
			sc := a.contexts(workspace)

			var start *nodesearch.Node
			if startingPoint != "" {
				if start, err = sc.GetNode(ctx, nil, startingPoint); err != nil {
					return err
				}
				if start == nil {
					return fmt.Errorf("starting point %s not found in workspace %s", startingPoint, workspace)
				}
			}

			nodes, err := svc.FindByProperties(ctx, term, nodeTypes, sc, start)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(nodes)
		},
	}

	cmd.Flags().StringVarP(&term, "term", "t", "", "search term")
	cmd.Flags().StringSliceVarP(&nodeTypes, "node-type", "n", nil, "node types to search (repeatable or comma separated)")
	cmd.Flags().StringVarP(&startingPoint, "starting-point", "s", "", "absolute path of the node to search below")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace name (default from config)")
	return cmd
}
