// Command clawcombat-server is the arena's HTTP entry point: it brings up
// the store, the HTTP surface, the turn-timeout scheduler, and the
// webhook dispatcher, per spec.md §9's catalogs-store-background-loops
// bring-up order.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MoJuiceX/clawcombat-sub000/internal/config"
	"github.com/MoJuiceX/clawcombat-sub000/internal/coordinator"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/httpapi"
	"github.com/MoJuiceX/clawcombat-sub000/internal/logging"
	"github.com/MoJuiceX/clawcombat-sub000/internal/scheduler"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "clawcombat-server",
	Short: "clawcombat-server runs the claw combat arena",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the HTTP API, the turn scheduler, and the webhook dispatcher",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "apply the embedded schema to the configured database and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := store.ApplySchema(cmd.Context(), cfg.DBPath); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	fmt.Fprintf(os.Stdout, "schema applied to %s\n", cfg.DBPath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err = logging.New(cfg.NodeEnv)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	bus := events.NewBus()
	now := func() int64 { return time.Now().Unix() }
	coord := coordinator.New(db, bus, now)

	dispatcher := webhook.NewDispatcher(logging.WarnLogger{Zap: logging.ForComponent(log, "webhook")})
	if err := dispatcher.Subscribe(bus); err != nil {
		return fmt.Errorf("subscribe webhook dispatcher: %w", err)
	}
	defer dispatcher.Close()

	sched := scheduler.New(db, bus, coord, now, logging.WarnLogger{Zap: logging.ForComponent(log, "scheduler")}).
		WithIntervals(cfg.SchedulerTick, cfg.TurnTimeout)

	handler := httpapi.New(db, coord, bus, logging.ForComponent(log, "httpapi"), now, cfg.CORSOrigins, cfg.IsDevelopment())
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Info("http server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		return sched.Run(egCtx)
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
