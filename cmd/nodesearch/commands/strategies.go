package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/ncobase/nodesearch/config"
	"github.com/ncobase/nodesearch/expression"
	"github.com/spf13/cobra"
)

func newStrategiesCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List search strategies in evaluation order and validate them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configFile)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tIDENTIFIER\tTEMPLATE\tCONDITION")
			for _, s := range cfg.NodeSearch.Strategies.Sorted() {
				template := "no"
				if s.HasTemplate() {
					template = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Position, s.Identifier, template, s.Condition)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			errs := validateStrategies(expression.New(nil), cfg.NodeSearch.Strategies)
			for _, err := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			if len(errs) > 0 {
				return errors.New("strategies: configuration has errors")
			}
			return nil
		},
	}
}
