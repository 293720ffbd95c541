package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ricardomaia/agendador/internal/config"
	"github.com/ricardomaia/agendador/internal/database"
	"github.com/ricardomaia/agendador/internal/dialog"
	"github.com/ricardomaia/agendador/internal/gcal"
	"github.com/ricardomaia/agendador/internal/nlp"
	"github.com/ricardomaia/agendador/internal/nlp/bayes"
	"github.com/ricardomaia/agendador/internal/notify"
	"github.com/ricardomaia/agendador/internal/telegram"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		fatal("loading configuration", err)
	}

	// Phase 1: Core infrastructure
	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	gcalClient, err := gcal.NewClient(db, cfg.GoogleCredentialsFile)
	if err != nil {
		fatal("creating Google Calendar client", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Printf("Warning: invalid timezone %q, using UTC: %v\n", cfg.Timezone, err)
		loc = time.UTC
	}

	// Phase 2: Conversation layer
	classifier := initClassifier(cfg)
	notifier := initNotifier(cfg)

	engine := dialog.NewEngine(db, gcalClient, gcalClient, classifier, notifier, loc,
		time.Duration(cfg.PendingTTLMinutes)*time.Minute)
	manager := dialog.NewManager(engine)

	// Phase 3: Telegram transport
	tgClient := initTelegram(db, cfg, manager)
	if tgClient == nil {
		fatal("starting Telegram client", fmt.Errorf("connection failed"))
	}

	waitForShutdown(tgClient)
}

func initClassifier(cfg *config.Config) nlp.Classifier {
	rules := nlp.NewRuleClassifier()
	if cfg.Classifier != "bayes" {
		fmt.Println("Intent classifier: rules")
		return rules
	}

	bayesClassifier, err := bayes.New(rules)
	if err != nil {
		fmt.Printf("Warning: failed to train bayes classifier, falling back to rules: %v\n", err)
		return rules
	}
	fmt.Println("Intent classifier: bayes (rules fallback)")
	return bayesClassifier
}

func initNotifier(cfg *config.Config) dialog.Notifier {
	n := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom)
	if n == nil {
		fmt.Println("Email confirmations disabled (AGENDADOR_RESEND_API_KEY or AGENDADOR_EMAIL_FROM not set)")
		return nil
	}
	fmt.Println("Email confirmation service configured (Resend)")
	return n
}

func initTelegram(db *database.DB, cfg *config.Config, manager *dialog.Manager) *telegram.Client {
	handler := telegram.NewHandler(db, manager)

	tgClient, err := telegram.NewClient(telegram.ClientConfig{
		APIID:       cfg.TelegramAppID,
		APIHash:     cfg.TelegramAppHash,
		BotToken:    cfg.TelegramBotToken,
		SessionPath: cfg.SessionPath,
		Handler:     handler,
	})
	if err != nil {
		fmt.Printf("Warning: Failed to create Telegram client: %v\n", err)
		return nil
	}

	if err := tgClient.Connect(); err != nil {
		fmt.Printf("Warning: Failed to connect Telegram: %v\n", err)
		return nil
	}
	tgClient.StartUpdateLoop()

	fmt.Println("Telegram bot initialized")
	return tgClient
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(tgClient *telegram.Client) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	tgClient.Disconnect()
}
