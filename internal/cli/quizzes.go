package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-platform/internal/app"
	"quiz-platform/internal/config"
	"quiz-platform/internal/infra/memory"
	"quiz-platform/internal/infra/postgres"
	rediscache "quiz-platform/internal/infra/redis"
	"quiz-platform/internal/notify"
	"quiz-platform/internal/task"
	transport "quiz-platform/internal/transport/http"
)

// NewQuizzesCmd builds the subcommand that runs the quiz service: quiz
// CRUD, review and the async submission pipeline.
func NewQuizzesCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "Start the quiz service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuizService(cmd.Context(), *configPath, *port)
		},
	}
}

func runQuizService(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Quizzes.Port
	}
	if finalPort == "" {
		finalPort = "8081"
	}

	var quizStore app.QuizStore = memory.NewQuizStore()
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		quizStore = postgres.NewQuizStore(pool)
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
		quizStore = rediscache.NewQuizCache(client, quizStore, quizTTL)
	}

	var mail app.ResultSender = notify.LogSender{}
	if cfg.SMTP.Host != "" {
		mail = notify.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	bridgeTimeout := config.TTLDuration(cfg.Bridge.Timeout, 5*time.Second)
	bridge := notify.NewBridgeClient(cfg.Bridge.UserServiceURL, cfg.Bridge.Token, bridgeTimeout)

	runner := task.NewRunner()
	quizzes := app.NewQuizService(quizStore, bridge)
	coordinator := app.NewCoordinator(quizStore, runner, mail, bridge, bridgeTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	transport.NewQuizHandler(quizzes, coordinator).Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down quiz service...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down quiz service...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	// Let in-flight scoring tasks finish before the process exits.
	return runner.Shutdown(shutdownCtx)
}
