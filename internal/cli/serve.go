package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/server"
)

// serveCommand creates the serve command, which exposes one graph over HTTP
// until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags        graphFlags
		addr         string
		engine       string
		seedScript   string
		scriptFormat string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "serve <vertices>",
		Short: "Serve a graph over HTTP",
		Long: `Serve a graph over HTTP. Edges are added with POST /edges, vertices are
deleted with DELETE /vertices/{id}, and GET /max answers with the vertex of
the heaviest neighborhood. GET /render draws the current graph.`,
		Example: `  heaviest serve vertices.toml
  heaviest serve vertices.toml --addr 127.0.0.1:9000 --script warmup.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if engine == "" {
				engine = c.Config.Server.Engine
			}

			g, err := c.loadGraph(args[0], flags)
			if err != nil {
				return err
			}
			if seedScript != "" {
				if err := c.applyScript(ctx, g, seedScript, scriptFormat); err != nil {
					return err
				}
			}

			renderer, err := c.newRenderer(ctx, noCache)
			if err != nil {
				return err
			}
			defer renderer.Cache.Close()

			srv := server.New(g, server.Options{
				Renderer: renderer,
				Engine:   engine,
				Logger:   c.Logger,
			})
			printSuccess("Serving %s", args[0])
			printKeyValue("address", addr)
			printKeyValue("instance", srv.ID())
			printStats(g.Stats())
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default [server] addr)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine for /render (default [server] engine)")
	cmd.Flags().StringVarP(&seedScript, "script", "s", "", "apply this operation script before serving")
	cmd.Flags().StringVar(&scriptFormat, "script-format", "", "script format: json, toml or text (default from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
