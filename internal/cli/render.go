package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
	"github.com/matzehuels/heaviest/pkg/render/nodelink"
	"github.com/matzehuels/heaviest/pkg/script"
)

// formatDOT writes the Graphviz source without laying it out.
const formatDOT = "dot"

// renderOpts holds the flags of the render command.
type renderOpts struct {
	graph        graphFlags
	script       string
	scriptFormat string
	output       string
	format       string
	engine       string
	plain        bool
	noCache      bool
}

// renderCommand creates the render command, which draws the graph, optionally
// after applying a script, with the heaviest vertex highlighted.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: nodelink.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <vertices>",
		Short: "Draw the graph with its neighborhood weights",
		Example: `  heaviest render vertices.toml
  heaviest render vertices.toml --script ops.txt -o after.png --format png
  heaviest render vertices.json --format dot -o graph.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.engine == "" {
				opts.engine = c.Config.Server.Engine
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	opts.graph.register(cmd)
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "apply this operation script before drawing")
	cmd.Flags().StringVar(&opts.scriptFormat, "script-format", "", "script format: json, toml or text (default from extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <vertices>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "to", "t", opts.format, "output format: svg, png or dot")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: dot, neato, circo or fdp (default [server] engine)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "draw ids only, without weights or highlight")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	if err := validateRenderFormat(opts.format); err != nil {
		return err
	}

	g, err := c.loadGraph(path, opts.graph)
	if err != nil {
		return err
	}
	if opts.script != "" {
		if err := c.applyScript(ctx, g, opts.script, opts.scriptFormat); err != nil {
			return err
		}
	}

	dot := nodelink.ToDOT(g, nodelink.Options{ShowWeights: !opts.plain, HighlightMax: !opts.plain})
	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}

	if opts.format == formatDOT {
		if err := os.WriteFile(out, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printSuccess("Wrote DOT")
		printFile(out)
		return nil
	}

	renderer, err := c.newRenderer(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer renderer.Cache.Close()

	spin := newSpinner(ctx, fmt.Sprintf("Laying out %d vertices with %s", g.NumNodes(), opts.engine))
	spin.Start()
	data, cached, err := renderer.Render(ctx, dot, opts.engine, opts.format)
	spin.Stop()
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	printSuccess("Rendered %s", strings.ToUpper(opts.format))
	printRendered(out, cached)
	printStats(g.Stats())
	return nil
}

// applyScript runs a script against g before it is drawn or served. Failed
// expectations are reported but do not stop the command.
func (c *CLI) applyScript(ctx context.Context, g *graph.Graph, path, format string) error {
	ops, err := script.Load(path, format)
	if err != nil {
		return err
	}
	res, err := script.NewRunner(loggerFromContext(ctx)).Run(ctx, g, ops)
	if errs.Is(err, errs.ErrCodeExpectationFailed) {
		printWarning("%d of %d expectations failed in %s", res.Failed, res.Applied, path)
		return nil
	}
	return err
}

func validateRenderFormat(format string) error {
	if format == formatDOT || slices.Contains(nodelink.Formats, format) {
		return nil
	}
	return errs.ValidateFormat(format, append([]string{formatDOT}, nodelink.Formats...)...)
}
