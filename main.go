package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jalnangage/marketing-agent/internal/config"
	"github.com/jalnangage/marketing-agent/internal/database"
	"github.com/jalnangage/marketing-agent/internal/gcal"
	"github.com/jalnangage/marketing-agent/internal/llm"
	"github.com/jalnangage/marketing-agent/internal/notify"
	"github.com/jalnangage/marketing-agent/internal/server"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := initDatabase(cfg)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	gcalClient := initGCal(cfg)
	notifyService := initNotifyService(cfg)
	generator := initGenerator(cfg)

	var worker *gcal.Worker
	if gcalClient != nil {
		worker = gcal.NewWorker(gcalClient, db, gcal.WorkerConfig{
			CalendarID:       cfg.CalendarID,
			SubmitDelayMilli: cfg.SubmitDelayMilli,
		})
		worker.OnBatchDone(func(result gcal.BatchResult) {
			notifyService.NotifyBatchDone(context.Background(), notify.BatchSummary{
				Created:    result.Created,
				Failed:     result.Failed,
				Failures:   result.Failures,
				FinishedAt: time.Now(),
			})
		})
		if err := worker.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: calendar submit worker failed to start: %v\n", err)
		}
	}

	srvCfg := server.ServerConfig{
		DB:            db,
		Generator:     generator,
		NotifyService: notifyService,
		Port:          cfg.HTTPPort,
		BaseURL:       cfg.BaseURL,
		CalendarID:    cfg.CalendarID,
		Timezone:      cfg.Timezone,
	}
	if gcalClient != nil {
		srvCfg.GCalClient = gcalClient
	}
	if worker != nil {
		srvCfg.Worker = worker
	}

	srv := server.New(srvCfg)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv, worker)
}

func initDatabase(cfg *config.Config) (*database.DB, error) {
	return database.New(cfg.DBPath)
}

func initGCal(cfg *config.Config) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: Google Calendar not available: %v\n", err)
		return nil
	}

	if client.IsAuthenticated() {
		fmt.Println("Google Calendar client initialized (authenticated)")
	} else {
		fmt.Println("Google Calendar client initialized (authorization pending)")
	}

	return client
}

func initGenerator(cfg *config.Config) llm.Generator {
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set, chat and strategy generation will fail")
	}

	client := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	fmt.Printf("LLM client configured (model %s)\n", cfg.OpenAIModel)
	return client
}

func initNotifyService(cfg *config.Config) *notify.Service {
	var emailNotifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		emailNotifier = notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.BaseURL)
		if emailNotifier != nil && emailNotifier.IsConfigured() {
			fmt.Println("Email notification service configured (Resend)")
		}
	}

	return notify.NewService(emailNotifier, cfg.NotifyEmail)
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server, worker *gcal.Worker) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if worker != nil {
		worker.Stop()
	}
	srv.Shutdown(ctx)
}
