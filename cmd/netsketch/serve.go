package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recera/netsketch/cmd/netsketch/internal/config"
	"github.com/recera/netsketch/internal/cache"
	"github.com/recera/netsketch/internal/preview"
)

func newServeCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve <diagram.json>",
		Short: "Serve an exported diagram with live reload",
		Long: `Starts an HTTP server rendering the diagram as SVG. The file is watched
and connected browsers reload automatically when it changes, so keeping the
editor exporting into the watched directory gives a live preview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if host == "" {
				host = cfg.Serve.Host
			}
			if port == 0 {
				port = cfg.Serve.Port
			}

			renderCache, err := cache.New(cache.DefaultConfig())
			if err != nil {
				return err
			}

			srv := preview.NewServer(args[0], nil, renderCache)
			defer srv.Close()
			return srv.ListenAndServe(fmt.Sprintf("%s:%d", host, port))
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host to bind (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config)")

	return cmd
}
