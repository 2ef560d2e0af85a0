package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/config"
	"github.com/matzehuels/depscope/pkg/graph"
	"github.com/matzehuels/depscope/pkg/render"
	"github.com/matzehuels/depscope/pkg/session"
	"github.com/matzehuels/depscope/pkg/source"
	"github.com/matzehuels/depscope/pkg/traverse"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	refresh  bool   // bypass HTTP cache
	maxNodes int    // maximum packages to expand
	export   string // JSON export path (skipped if empty)
	noImage  bool   // skip PNG rendering
}

// newAnalyzeCmd creates the analyze command.
//
// The command reads a configuration file naming a root package, a manifest
// source, a ref, and an output image; builds the dependency graph; prints a
// structural report; and renders the diagram.
func newAnalyzeCmd() *cobra.Command {
	opts := analyzeOpts{maxNodes: 500}

	cmd := &cobra.Command{
		Use:   "analyze <config-file>",
		Short: "Build and render a package dependency graph",
		Long: `Build the dependency graph described by a configuration file and render
it as a PNG diagram.

The configuration selects where manifests come from: remote mode fetches
Cargo.toml files through the GitHub contents API, while local/test mode reads
a fixture adjacency file.

Examples:
  depscope analyze config.yaml
  depscope analyze config.toml --refresh
  depscope analyze config.yaml --export graph.json --no-image`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached HTTP responses")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "maximum packages to expand")
	cmd.Flags().StringVar(&opts.export, "export", "", "also write the graph as JSON to this path")
	cmd.Flags().BoolVar(&opts.noImage, "no-image", false, "skip PNG rendering")

	return cmd
}

func runAnalyze(ctx context.Context, cfgPath string, opts analyzeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded config: %s", cfg)
	printConfig(cfg)

	src, err := newSource(cfg, opts.refresh)
	if err != nil {
		return err
	}

	builder := traverse.New(src, traverse.Options{
		Filter:   traverse.NewFilter(cfg.FilterSubstring),
		MaxNodes: opts.maxNodes,
		Logger:   logger.Debugf,
	})

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Resolving %s@%s", cfg.PackageName, cfg.Version))
	spin.start()
	res, err := builder.Build(ctx, cfg.PackageName, cfg.Version)
	spin.stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages", res.Visited))

	report := graph.Summarize(res.Graph)
	printReport(cfg.PackageName, res, report)

	if opts.export != "" {
		if err := graph.WriteExportFile(res.Graph, res.Root, opts.export); err != nil {
			return err
		}
		printFile(opts.export)
	}

	if !opts.noImage {
		dot := graph.ToDOT(graph.FromGraph(res.Graph, res.Root))
		if err := render.WritePNGFile(ctx, dot, cfg.OutputImage); err != nil {
			return err
		}
		printSuccess("Diagram written")
		printFile(cfg.OutputImage)
	}

	recordRun(ctx, cfg, res, report)
	return nil
}

// printConfig echoes the validated parameters before the traversal starts.
func printConfig(cfg *config.Config) {
	printKeyValue("package", cfg.PackageName)
	printKeyValue("mode", cfg.Mode)
	printKeyValue("source", cfg.RepoURL)
	printKeyValue("version", cfg.Version)
	printKeyValue("output", cfg.OutputImage)
	if cfg.FilterSubstring != "" {
		printKeyValue("filter", cfg.FilterSubstring)
	}
}

// newSource selects the manifest source the validated mode calls for.
func newSource(cfg *config.Config, refresh bool) (source.Source, error) {
	if cfg.UsesFixture() {
		return source.NewFixtureSource(cfg.RepoURL)
	}
	return source.NewRemoteSource(cfg.RepoURL, cfg.PackageName, source.RemoteOptions{
		Token:    os.Getenv("GITHUB_TOKEN"),
		CacheTTL: source.DefaultCacheTTL,
		Refresh:  refresh,
	})
}

// printReport prints the structural summary and the adjacency listing.
func printReport(root string, res *traverse.Result, report graph.Report) {
	printInfo("Dependency graph for %s", StyleHighlight.Render(root))
	printStats(report.NodeCount, report.EdgeCount, res.Cycles)
	printDetail("shape: %s", report.Shape)
	if res.Skipped > 0 {
		printDetail("filtered: %d packages not expanded", res.Skipped)
	}
	if res.Failed > 0 {
		printWarning("%d packages could not be fetched and were kept as leaves", res.Failed)
	}

	for _, row := range report.Adjacency {
		if len(row.Deps) == 0 {
			printDetail("%s (no dependencies)", row.Package)
			continue
		}
		printDetail("%s %s %s", row.Package, iconArrow, strings.Join(row.Deps, ", "))
	}
}

// recordRun appends the run to the history store. History is best-effort:
// a failure here never fails the analysis.
func recordRun(ctx context.Context, cfg *config.Config, res *traverse.Result, report graph.Report) {
	logger := loggerFromContext(ctx)

	store, err := session.NewFileStore("")
	if err != nil {
		logger.Warnf("History disabled: %v", err)
		return
	}

	run := session.NewRun(cfg.PackageName, cfg.Version, cfg.Mode)
	run.Nodes = report.NodeCount
	run.Edges = report.EdgeCount
	run.Cycles = res.Cycles
	run.Failed = res.Failed
	run.Output = cfg.OutputImage

	if err := store.Append(ctx, run); err != nil {
		logger.Warnf("Could not record run: %v", err)
	}
}
