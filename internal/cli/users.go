package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"quiz-platform/internal/app"
	"quiz-platform/internal/config"
	"quiz-platform/internal/infra/memory"
	"quiz-platform/internal/infra/postgres"
	transport "quiz-platform/internal/transport/http"
)

// NewUsersCmd builds the subcommand that runs the user service: user
// records, the result bridge ingest side, history, leaderboard and the
// admin event feed.
func NewUsersCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Start the user service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserService(cmd.Context(), *configPath, *port)
		},
	}
}

func runUserService(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Users.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var (
		userStore   app.UserStore   = memory.NewUserStore()
		resultStore app.ResultStore = memory.NewResultStore()
	)
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()
		userStore = postgres.NewUserStore(db)
		resultStore = postgres.NewResultStore(db)
	}

	hub := app.NewHub()
	users := app.NewUserService(userStore)
	results := app.NewResultService(userStore, resultStore, cfg.Bridge.Token, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	transport.NewUserHandler(users).Register(mux)
	transport.NewResultsHandler(results).Register(mux)
	mux.HandleFunc("/ws/events", transport.NewEventsHandler(hub).ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting user service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down user service...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down user service...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
