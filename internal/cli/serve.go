package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cratetower/internal/server"
	"github.com/matzehuels/cratetower/pkg/cache"
	"github.com/matzehuels/cratetower/pkg/observability/prom"
)

// serverKeyPrefix keeps server results apart from CLI results in a shared
// cache backend.
const serverKeyPrefix = "server:"

// serveCommand creates the serve command, which starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation API over HTTP",
		Long: `Start an HTTP server exposing:

  POST /v1/simulate?mode=single|block   simulate the puzzle in the request body
  POST /v1/parse                        report the initial stacks
  GET  /healthz                         liveness and build information
  GET  /metrics                         Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache, cache.NewScopedKeyer(nil, serverKeyPrefix))
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			prom.New(reg).Register()

			srv := server.New(runner, loggerFromContext(ctx), server.WithMetrics(prom.Handler(reg)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
