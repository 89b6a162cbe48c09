package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gdg-garage/iftar-registration/internal/config"
	"github.com/gdg-garage/iftar-registration/internal/handlers"
	"github.com/gdg-garage/iftar-registration/internal/notifier"
	"github.com/gdg-garage/iftar-registration/internal/registration"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the registration HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	registrar := registration.NewRegistrar(store, newNotifier(cfg))
	registrationHandler := handlers.NewRegistrationHandler(registrar, store)
	reportHandler := handlers.NewReportHandler(store, cfg.Currency)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, registrationHandler, reportHandler)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newNotifier returns nil when Discord is not configured.
func newNotifier(cfg *config.Config) registration.Notifier {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		slog.Info("discord notifier disabled")
		return nil
	}

	session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
	if err != nil {
		slog.Warn("discord notifier not initialized", "error", err)
		return nil
	}
	return notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, cfg.Currency)
}
