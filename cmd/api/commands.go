package main

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

	"github.com/spf13/cobra"

	"github.com/georgemunganga/retailos/internal/config"
	"github.com/georgemunganga/retailos/internal/database"
	"github.com/georgemunganga/retailos/internal/modules/schema"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "posd",
		Short:        "Multi-tenant point-of-sale backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.Load())
		},
	}
	root.AddCommand(newServeCmd(), newSchemaCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create any missing tables and indexes, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if driver != "" {
				cfg.DBDriver = driver
			}
			if dsn != "" {
				cfg.DatabaseURL = dsn
			}
			ctx := contextOf(cmd)
			db, dialect, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := schema.NewManager(db, dialect).Ensure(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema ready (%s)\n", dialect.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "database driver: postgres or sqlite (overrides DB_DRIVER)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "connection string (overrides DATABASE_URL)")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Printf("Connected to %s database", dialect.Name)

	schemas := schema.NewManager(db, dialect)
	if err := schemas.Ensure(ctx); err != nil {
		// retried lazily by the schema middleware on the next request
		log.Printf("schema: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(db, dialect, schemas, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("POS API server starting on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
