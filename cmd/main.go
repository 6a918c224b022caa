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

	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	discordclient "kbbridge/clients/discord"
	webhookclient "kbbridge/clients/webhook"
	"kbbridge/config"
	"kbbridge/core/log"
	"kbbridge/handlers"
	"kbbridge/middleware"
	"kbbridge/services/classifier"
	"kbbridge/services/conversationcontext"
	"kbbridge/services/eventqueue"
	"kbbridge/services/forwarder"
	"kbbridge/services/projects"
	discordusecase "kbbridge/usecases/discord"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	EnvFile  string `long:"env-file" default:".env" description:"Path to a .env file loaded before reading the environment"`
	LogLevel string `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
	Setup    bool   `long:"setup" description:"Create the Active and Completed project categories at startup if missing"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	level, err := log.ParseLevel(opts.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "kbbridge",
		LogsURL:     cfg.ServerLogsURL,
	})

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Clients
	discordClient := discordclient.NewDiscordClient(session)
	webhookClient := webhookclient.NewWebhookClient(&http.Client{}, cfg.ForwardingConfig.WebhookURL)

	// Services
	eventClassifier := classifier.NewClassifier(classifier.Policy{
		ThreadReplies: cfg.DiscordConfig.ThreadRepliesEnabled,
	})
	contextService := conversationcontext.NewConversationContextService(discordClient)
	forwarderService := forwarder.NewForwarderService(webhookClient, cfg.ForwardingConfig.Timeout)
	projectsService := projects.NewProjectsService(discordClient, projects.Config{
		GuildID:               cfg.DiscordConfig.GuildID,
		ActiveCategoryName:    cfg.DiscordConfig.ActiveCategoryName,
		CompletedCategoryName: cfg.DiscordConfig.CompletedCategoryName,
	})
	queue := eventqueue.NewConversationQueue(cfg.ForwardingConfig.EventWorkers)

	// Use cases and handlers
	discordUseCase := discordusecase.NewDiscordUseCase(
		discordClient,
		eventClassifier,
		contextService,
		forwarderService,
		cfg.ForwardingConfig.HistoryLimit,
	)
	discordHandler := handlers.NewDiscordEventsHandler(session, discordClient, discordUseCase, queue, alertMiddleware)
	projectsHandler := handlers.NewProjectsHTTPHandler(projectsService, cfg.DiscordConfig.ActiveCategoryName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Setup {
		categories, err := projectsService.EnsureLifecycleCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to set up project categories: %w", err)
		}
		log.Info("✅ Project categories ready",
			"active_category_id", categories.ActiveCategoryID,
			"completed_category_id", categories.CompletedCategoryID)
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", handleHealth).Methods("GET")
	projectsHandler.SetupEndpoints(router)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins(),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(middleware.RequestID(c.Handler(router))),
		ReadHeaderTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(alertMiddleware.WrapBackgroundTask("HTTP server", func() error {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}))

	g.Go(alertMiddleware.WrapBackgroundTask("Discord bot", func() error {
		if err := discordHandler.StartBot(); err != nil {
			return err
		}
		<-gctx.Done()
		return discordHandler.StopBot()
	}))

	g.Go(func() error {
		<-gctx.Done()
		log.Info("🛑 Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		queue.Stop()
		if err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		log.Info("✅ Server stopped gracefully")
		return nil
	})

	return g.Wait()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
