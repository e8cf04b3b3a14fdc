package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cert-quiz-service/internal/app"
	"cert-quiz-service/internal/bank"
	"cert-quiz-service/internal/config"
	"cert-quiz-service/internal/domain"
	"cert-quiz-service/internal/infra/memory"
	pgloader "cert-quiz-service/internal/infra/postgres"
	redisinfra "cert-quiz-service/internal/infra/redis"
	transport "cert-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const defaultBankID = "default"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	bankID := cfg.Bank.ID
	if bankID == "" {
		bankID = defaultBankID
	}

	var loader memory.BankLoader
	switch {
	case pool != nil:
		loader = pgloader.NewBankLoader(pool)
	case cfg.Bank.Path != "":
		loader = bank.NewFileLoader(map[string]string{bankID: cfg.Bank.Path})
	default:
		loader = bank.NewStaticLoader(map[string][]domain.Question{bankID: sampleBank()})
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var banks app.BankRepository
	if redisClient != nil {
		banks = redisinfra.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
	}

	var attempts app.AttemptRepository
	var names transport.NameStore
	if redisClient != nil {
		attempts = redisinfra.NewAttemptStore(redisClient)
		names = redisinfra.NewNameStore(redisClient, redisTTL)
	} else {
		attempts = memory.NewAttemptStore()
		names = memory.NewNameStore()
	}

	policy := app.PolicyFromConfig(cfg.Quiz)
	if pool == nil && cfg.Bank.Path == "" && policy.TargetSize > len(sampleBank()) {
		// demo mode: the built-in bank is tiny, keep selection satisfiable
		log.Printf("no bank configured, clamping quiz size to sample bank (%d questions)", len(sampleBank()))
		policy.TargetSize = len(sampleBank())
	}

	service := app.NewAttemptService(banks, attempts, policy)
	wsHandler := transport.NewWSHandler(service, names, bankID)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting cert quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleBank provides a minimal pool for demos without a configured bank;
// pair it with quiz.target_size small enough to be satisfiable.
func sampleBank() []domain.Question {
	return []domain.Question{
		{
			ID:         "q-ohm",
			Prompt:     "What does Ohm's law relate?",
			Options:    []string{"Voltage, current, resistance", "Mass and energy", "Force and acceleration"},
			Answer:     0,
			Importance: domain.ImportanceCritical,
			TopicTags:  []string{"fundamentals"},
		},
		{
			ID:         "q-unit",
			Prompt:     "Which unit measures electrical resistance?",
			Options:    []string{"Farad", "Ohm", "Henry", "Tesla"},
			Answer:     1,
			Importance: domain.ImportanceNormal,
			TopicTags:  []string{"units"},
		},
		{
			ID:         "q-series",
			Prompt:     "Two 10-ohm resistors in series have a combined resistance of?",
			Options:    []string{"5 ohms", "10 ohms", "20 ohms"},
			Answer:     2,
			Importance: domain.ImportanceNormal,
			TopicTags:  []string{"circuits"},
		},
	}
}
