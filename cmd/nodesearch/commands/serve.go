package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/nodesearch/config"
	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/server"
	"github.com/spf13/cobra"
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *configFile)
		},
	}
}

func serve(ctx context.Context, configFile string) error {
	a, err := openApp(ctx, configFile, openOptions{search: true, database: true})
	if err != nil {
		return err
	}
	defer a.Close()

	svc, err := a.newService(ctx, a.cfg)
	if err != nil {
		return err
	}

	srv := server.New(svc, server.Options{
		Contexts:         a.contexts,
		Checks:           []data.Check{data.DatabaseCheck(a.db), data.SearchCheck(a.client)},
		DefaultWorkspace: a.cfg.NodeSearch.DefaultWorkspace,
		Gatherer:         a.registry,
		Logger:           a.log,
		Mode:             ginMode(a.cfg.RunMode),
	})

	// strategy and flag changes apply without restart; backend settings do not
	a.cfg.Watch(func(next *config.Config) {
		svc, err := a.newService(ctx, next)
		if err != nil {
			a.log.Errorf(ctx, "Failed to rebuild search service: %v", err)
			return
		}
		srv.SetService(svc)
		a.log.Infof(ctx, "Reloaded %d search strategies", len(next.NodeSearch.Strategies))
	}, func(err error) {
		a.log.Errorf(ctx, "%v", err)
	})

	return srv.Run(ctx, a.cfg.Addr())
}

func ginMode(runMode string) string {
	switch runMode {
	case gin.DebugMode, gin.TestMode:
		return runMode
	default:
		return gin.ReleaseMode
	}
}
