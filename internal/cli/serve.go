package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genoviz/pkg/buildinfo"
	"github.com/matzehuels/genoviz/pkg/cache"
	"github.com/matzehuels/genoviz/pkg/config"
	"github.com/matzehuels/genoviz/pkg/observability"
	"github.com/matzehuels/genoviz/pkg/pipeline"
	"github.com/matzehuels/genoviz/pkg/render"
	"github.com/matzehuels/genoviz/pkg/server"
	"github.com/matzehuels/genoviz/pkg/session"
)

// serveCommand creates the serve command that runs the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		port       int
		sessionDir string
		styleFile  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders and interactive chart sessions over HTTP",
		Long: `Serve renders and interactive chart sessions over HTTP.

Settings come from GENOVIZ_* environment variables:

  GENOVIZ_PORT             listen port (8080)
  GENOVIZ_REDIS_URL        Redis artifact cache (default: local file cache)
  GENOVIZ_MONGO_URI        MongoDB session store (default: in memory)
  GENOVIZ_MONGO_DB         MongoDB database (genoviz)
  GENOVIZ_CACHE_TTL        artifact lifetime (24h)
  GENOVIZ_SESSION_TTL      idle session lifetime (24h)
  GENOVIZ_ALLOWED_ORIGINS  websocket origin patterns (localhost:*)
  GENOVIZ_STYLE_FILE       TOML style file

Flags override the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return fmt.Errorf("load server config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if styleFile != "" {
				cfg.StyleFile = styleFile
			}
			return c.runServe(cmd.Context(), cfg, sessionDir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "keep sessions as files in this directory (ignored with GENOVIZ_MONGO_URI)")
	cmd.Flags().StringVar(&styleFile, "style-file", "", "TOML style file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Server, sessionDir string) error {
	logger := loggerFromContext(ctx)

	styles, err := loadStyles(cfg.StyleFile)
	if err != nil {
		return err
	}
	artifacts, backend, err := openArtifactCache(ctx, cfg)
	if err != nil {
		return err
	}
	store, storeName, err := openSessionStore(ctx, cfg, sessionDir)
	if err != nil {
		artifacts.Close()
		return err
	}

	counters := &observability.Counters{}
	observability.SetPipelineHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetInteractionHooks(counters)

	runner := pipeline.NewRunner(artifacts, cache.NewScopedKeyer(nil, "server:"), logger)
	runner.TTL = cfg.CacheTTL
	srv := server.New(runner, store,
		server.WithStyles(styles),
		server.WithLogger(logger),
		server.WithCounters(counters),
		server.WithAllowedOrigins(cfg.AllowedOrigins),
		server.WithSessionTTL(cfg.SessionTTL),
	)

	printSuccess("genoviz %s", buildinfo.Version)
	printKeyValue("Listening", fmt.Sprintf("http://localhost:%d", cfg.Port))
	printKeyValue("Cache", backend)
	printKeyValue("Sessions", storeName)
	if !render.Available() {
		printWarning("%s not found; png and pdf renders will fail", render.Tool)
	}

	return srv.Run(ctx, fmt.Sprintf(":%d", cfg.Port))
}

// openArtifactCache picks Redis when configured, else the local file cache.
func openArtifactCache(ctx context.Context, cfg *config.Server) (cache.Cache, string, error) {
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, appName+":")
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return rc, "redis", nil
	}
	fc, err := newCache(false)
	if err != nil {
		return nil, "", err
	}
	if f, ok := fc.(*cache.FileCache); ok {
		return fc, "file " + f.Dir(), nil
	}
	return fc, "disabled", nil
}

// openSessionStore picks MongoDB when configured, then a file store, then
// memory.
func openSessionStore(ctx context.Context, cfg *config.Server, dir string) (session.Store, string, error) {
	switch {
	case cfg.MongoURI != "":
		ms, err := session.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, "", err
		}
		return ms, "mongodb " + cfg.MongoDB, nil
	case dir != "":
		fs, err := session.NewFileStore(dir)
		if err != nil {
			return nil, "", err
		}
		return fs, "file " + dir, nil
	}
	return session.NewMemoryStore(), "memory", nil
}
