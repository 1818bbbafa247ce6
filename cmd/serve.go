package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perch-labs/vitelink/internal/build"
	"github.com/perch-labs/vitelink/internal/config"
	"github.com/perch-labs/vitelink/internal/logger"
	"github.com/perch-labs/vitelink/internal/manifest"
	"github.com/perch-labs/vitelink/internal/metrics"
	"github.com/perch-labs/vitelink/internal/server"
)

// NewServeCmd returns the "serve" subcommand that starts the HTTP server.
func NewServeCmd() *cobra.Command {
	var port int
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the asset server",
		Long: `Start the vitelink HTTP server. It loads the Vite build manifest from the
asset root once and serves pages, built assets, and the manifest API. With
--dev (or VITELINK_DEV_SERVER=true) it proxies asset traffic to the Vite dev
server instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("dev") {
				cfg.DevServer = dev
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP server port (overrides PORT env var)")
	cmd.Flags().BoolVar(&dev, "dev", false, "proxy to the Vite dev server instead of serving the build")

	return cmd
}

func runServe(cfg *config.AppConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var log *slog.Logger
	if cfg.LogDir != "" {
		var err error
		log, err = logger.NewFileLogger(cfg.LogFile(), cfg.SlogLevel())
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
	} else {
		log = logger.NewConsoleLogger(cfg.SlogLevel())
	}

	log.Info("vitelink starting",
		slog.Int("port", cfg.Port),
		slog.String("asset_root", cfg.AssetRoot),
		slog.Bool("dev_server", cfg.DevServer),
		slog.String("version", build.Version),
	)

	resolver, err := manifest.New(manifest.Options{
		Root:         cfg.AssetRoot,
		ManifestName: cfg.ManifestName,
		BasePath:     cfg.BasePath,
		DevServer:    cfg.DevServer,
		Logger:       log,
		Notices:      &manifest.Notices{},
	})
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}
	log.Info("manifest loaded", slog.Int("entries", resolver.Len()))

	pages, err := config.LoadPageRegistry(cfg.PagesFile)
	if err != nil {
		return fmt.Errorf("loading page registry: %w", err)
	}
	log.Info("page registry loaded", slog.Int("pages", pages.Len()))

	m := metrics.New()
	srv := server.New(cfg, resolver, pages, m, log)

	log.Info("server ready", slog.String("url", fmt.Sprintf("http://localhost:%d", cfg.Port)))
	return srv.Run(ctx)
}
