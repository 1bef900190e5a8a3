package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/extasset/internal/logger"
	"github.com/cperrin88/extasset/pkg/fileset"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var (
		src string
		out string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download external assets and rewrite markers",
		Long: `Load the site from --src, download every download::URL::download
asset into the destination directory, rewrite the markers to local paths
and write the whole site to --out.

--src and --out accept local directories or bucket URLs such as mem://.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.Context(), src, out)
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Site source directory or bucket URL")
	cmd.Flags().StringVar(&out, "out", "", "Output directory or bucket URL (defaults to --src)")
	_ = cmd.MarkFlagRequired("src")

	return cmd
}

func runRun(ctx context.Context, src, out string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out == "" {
		out = src
	}

	srcBucket, err := fileset.OpenBucket(ctx, src)
	if err != nil {
		return err
	}
	defer func() { _ = srcBucket.Close() }()

	set, err := fileset.Load(ctx, srcBucket)
	if err != nil {
		return fmt.Errorf("failed to load site: %w", err)
	}
	logger.Debug("Loaded site", logger.Fields{"src": src, "files": set.Len()})

	driver := newDriver(cfg)
	driver.Hooks.OnEvent = logEvent

	report, err := driver.Run(ctx, set)
	if err != nil {
		return fmt.Errorf("failed to materialize assets: %w", err)
	}

	outBucket, err := fileset.OpenBucket(ctx, out)
	if err != nil {
		return err
	}
	defer func() { _ = outBucket.Close() }()

	if err := fileset.Write(ctx, outBucket, set); err != nil {
		return fmt.Errorf("failed to write site: %w", err)
	}

	logger.Success("Assets materialized", logger.Fields{
		"run":       report.RunID,
		"markers":   report.Markers,
		"cached":    report.Hits,
		"fetched":   report.Misses,
		"rewritten": report.Rewritten,
		"out":       out,
	})
	return nil
}
