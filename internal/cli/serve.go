package cli

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barbell/internal/server"
	"github.com/matzehuels/barbell/pkg/observability/prom"
	"github.com/matzehuels/barbell/pkg/prefs"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		noCache      bool
		noMetrics    bool
		secureCookie bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a web page and JSON API",
		Long: `Serve the calculator as a web page and JSON API.

Each browser gets an anonymous cookie; its form and quick stock are kept in
the configured storage backend. Use redis or mongo to share preferences
between several server instances.

Endpoints:
  /                  calculator page
  /api/layout        plate selection as JSON (?target=225&bar=45&p45=4)
  /render.svg        loaded bar (same query, plus style and scale)
  /render.png
  /api/trace.svg     how the plates were picked
  /api/state         saved form (GET, PUT)
  /api/quickstock    quick-stock preset (GET, PUT)
  /healthz
  /metrics           Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			storage, err := prefs.Open(ctx, c.Config.Storage)
			if err != nil {
				return err
			}
			if storage != nil {
				defer storage.Close()
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := server.Options{
				Runner:       runner,
				Storage:      storage,
				Logger:       c.Logger,
				Bar:          c.Config.Bar,
				Style:        c.Config.Style,
				Unit:         c.Config.Unit,
				SecureCookie: secureCookie,
			}
			if c.Config.Server.Metrics && !noMetrics {
				opts.Metrics = metricsHandler()
			}

			c.Logger.Info("starting server",
				"addr", addr,
				"storage", c.Config.Storage.Backend,
				"metrics", opts.Metrics != nil)
			printInfo("Serving on %s", displayAddr(addr))

			prog := newProgress(c.Logger)
			err = server.New(opts).ListenAndServe(ctx, addr, c.Config.Server.ShutdownTimeout)
			prog.done("Server stopped", "addr", addr)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")
	cmd.Flags().BoolVar(&secureCookie, "secure-cookie", false, "mark the client cookie Secure (behind HTTPS)")

	return cmd
}

// metricsHandler installs the Prometheus hooks on a fresh registry and
// returns its HTTP handler.
func metricsHandler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom.New(reg).Install()
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// displayAddr turns ":8080" into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return fmt.Sprintf("http://localhost%s", addr)
	}
	return "http://" + addr
}
