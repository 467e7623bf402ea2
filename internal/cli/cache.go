package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cratetower/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the simulation result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend := c.config.Cache.Backend
			if backend == backendNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := c.newCache(ctx, backend)
			if err != nil {
				return err
			}
			defer cc.Close()

			if fc, ok := cc.(*cache.FileCache); ok {
				count, err := fc.Purge()
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", count)
				printDetail("Directory: %s", fc.Dir())
				return nil
			}

			spin := newSpinnerWithContext(ctx, fmt.Sprintf("Clearing the %s cache...", backend))
			spin.Start()
			if err := cache.Clear(ctx, cc); err != nil {
				spin.Stop()
				if errors.Is(err, cache.ErrNotClearable) {
					printWarning("The %s cache cannot be cleared", backend)
					return nil
				}
				return err
			}
			spin.StopWithSuccess(fmt.Sprintf("Cleared the %s cache", backend))
			if backend == backendRedis {
				printDetail("Address: %s", c.config.Cache.RedisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
