package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cperrin88/extasset/pkg/fileset"
	"github.com/cperrin88/extasset/pkg/marker"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	var src string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the markers of a site without downloading",
		Long:  "Print every distinct download marker found in the site sources with the URL it resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd.Context(), cmd, src)
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Site source directory or bucket URL")
	_ = cmd.MarkFlagRequired("src")

	return cmd
}

func runScan(ctx context.Context, cmd *cobra.Command, src string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bucket, err := fileset.OpenBucket(ctx, src)
	if err != nil {
		return err
	}
	defer func() { _ = bucket.Close() }()

	set, err := fileset.Load(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to load site: %w", err)
	}

	markers := marker.Scan(set, fileset.Matcher{Extensions: cfg.Sources})

	tabWriter := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tabWriter, "MARKER\tURL")
	for _, mk := range markers {
		_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", mk.ID, mk.URL)
	}
	_ = tabWriter.Flush()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d markers\n", len(markers))
	return nil
}
