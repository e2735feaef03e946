package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/staffroster/core/internal/adapters/repository"
	"github.com/staffroster/core/internal/application/services"
	"github.com/staffroster/core/internal/domain/entities"
	"github.com/staffroster/core/internal/infrastructure/config"
	"github.com/staffroster/core/internal/infrastructure/logger"
	"github.com/staffroster/core/internal/infrastructure/metrics"
	"github.com/staffroster/core/internal/infrastructure/persistence"
	"github.com/staffroster/core/internal/infrastructure/server"
)

// shutdownGrace is used when no shutdown timeout is configured
const shutdownGrace = 5 * time.Second

// Set at build time with -ldflags
var (
	Version   = "1.0.0"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the StaffRoster API server",
		Long:  "Load the employee snapshot and serve the employee API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

// NewSnapshotCommand creates the snapshot command with subcommands
func NewSnapshotCommand() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Snapshot file commands",
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the employees stored in the snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				path = cfg.Storage.Path
			}
			return inspectSnapshot(cmd.Context(), path, cmd.OutOrStdout())
		},
	}
	inspectCmd.Flags().String("path", "", "Snapshot file (defaults to storage.path)")

	snapshotCmd.AddCommand(inspectCmd)
	return snapshotCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StaffRoster version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "StaffRoster v%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	var m *metrics.Metrics
	var observer persistence.SaveObserver
	if cfg.Metrics.Enabled {
		m = metrics.New()
		observer = m
	}

	snapshots := persistence.New(cfg.Storage.Path, appLogger, observer)

	repo, err := repository.NewEmployeeRepository(ctx, snapshots)
	if err != nil {
		return fmt.Errorf("failed to open employee store: %w", err)
	}

	if m != nil {
		if err := m.RegisterStore(repo.Len, repo.Stale); err != nil {
			return fmt.Errorf("failed to register store metrics: %w", err)
		}
	}

	employeeService := services.NewEmployeeService(repo, cfg.Storage.Strict, appLogger)

	srv, err := server.New(cfg, employeeService, repo, snapshots, m, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	go employeeService.RunReconciler(ctx, cfg.Storage.FlushInterval)

	appLogger.Infow("Starting StaffRoster API server",
		"address", cfg.Server.GetAddr(),
		"environment", cfg.App.Environment,
		"snapshot", snapshots.Path(),
		"employees", repo.Len(),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(cfg.Server.GetAddr()) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownGrace
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Server shutdown failed", "error", err)
	}

	if err := employeeService.Flush(shutdownCtx); err != nil {
		return fmt.Errorf("snapshot still stale at shutdown: %w", err)
	}

	appLogger.Infow("Shutdown complete")
	return nil
}

func inspectSnapshot(ctx context.Context, path string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	snapshots := persistence.NewReader(path, logger.NewNop())
	employees, err := snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	list := make([]entities.Employee, 0, len(employees))
	for _, e := range employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("failed to print snapshot: %w", err)
	}

	return nil
}
