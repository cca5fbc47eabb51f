package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"github.com/folio/internal/media"
	"github.com/folio/internal/router"
	"github.com/folio/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio",
	Long: `serve loads the data directory, starts the HTTP server and, unless
disabled, reloads content whenever a data file changes. Idle page views are
evicted in the background.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg := appConfig
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		return fmt.Errorf("ensure admin user: %w", err)
	}

	store, err := content.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	engine, api, err := router.SetupRouter(cfg, router.Deps{
		Store:  store,
		Stats:  service.NewStatsService(db.DB),
		Prober: media.NewProber(cfg.AssetsDir, cfg.AssetsURLPath),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("folio listening on %s (data: %s)", cfg.ListenAddr, cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return api.Mounts().Run(ctx)
	})

	if cfg.WatchContent {
		g.Go(func() error {
			if err := store.Watch(ctx, content.DefaultDebounce); err != nil {
				// The server keeps running on the loaded library.
				log.Printf("[content] watcher stopped: %v", err)
			}
			return nil
		})
	}

	err = g.Wait()
	log.Printf("folio stopped")
	return err
}
