package main

import (
	"fmt"
	"os"

	"github.com/ncobase/nodesearch/cmd/nodesearch/commands"

	_ "github.com/ncobase/nodesearch/data/all"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
