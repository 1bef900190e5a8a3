package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cperrin88/extasset/internal/logger"
	"github.com/cperrin88/extasset/pkg/cache"
)

// NewCacheCmd creates the cache command with subcommands
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the download workspace",
		Long:  "Clean, show information about, and locate the download workspace",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the workspace",
		Long:  "Remove every cached download to free up disk space",
		Args:  cobra.NoArgs,
		RunE:  runCacheClean,
	}
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show workspace information",
		Long:  "Display size and entry counts of the download workspace",
		Args:  cobra.NoArgs,
		RunE:  runCacheInfo,
	}
}

func newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Show workspace directory path",
		Long:  "Display the path to the download workspace",
		Args:  cobra.NoArgs,
		RunE:  runCacheDir,
	}
}

func newCacheOperation() (*cache.Operation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cache.NewOperation(cache.NewWorkspace(cfg.Temp, cfg.ClearTemp)), nil
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	op, err := newCacheOperation()
	if err != nil {
		return err
	}

	msg, err := op.Clean()
	if err != nil {
		return err
	}

	logger.Success(msg, logger.Fields{"dir": op.GetDirectory()})
	return nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	op, err := newCacheOperation()
	if err != nil {
		return err
	}

	info, err := op.GetInfo()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), info)
	return nil
}

func runCacheDir(cmd *cobra.Command, _ []string) error {
	op, err := newCacheOperation()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), op.GetDirectory())
	return nil
}
