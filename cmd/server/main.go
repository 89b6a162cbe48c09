package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gdg-garage/iftar-registration/internal/config"
	"github.com/gdg-garage/iftar-registration/internal/database"
	"github.com/gdg-garage/iftar-registration/internal/ledger"
	"github.com/spf13/cobra"
)

const programName = "iftar"

var globalFlags = struct {
	backend    string
	ledgerPath string
	dbPath     string
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Iftar registration ledger",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalFlags.backend, "backend", "", "ledger backend: xlsx or sqlite (overrides LEDGER_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.ledgerPath, "ledger", "", "path to the ledger workbook (overrides LEDGER_PATH)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.dbPath, "db", "", "path to the SQLite ledger (overrides DATABASE_PATH)")

	// Without a subcommand the binary serves the API.
	rootCmd.RunE = serveCommand().RunE

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(reportCommand())
	rootCmd.AddCommand(migrateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies flag overrides and installs the
// default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if globalFlags.backend != "" {
		cfg.LedgerBackend = globalFlags.backend
	}
	if globalFlags.ledgerPath != "" {
		cfg.LedgerPath = globalFlags.ledgerPath
	}
	if globalFlags.dbPath != "" {
		cfg.DatabasePath = globalFlags.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger.With("component", programName))

	return cfg, nil
}

func openStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.LedgerBackend {
	case config.BackendSQLite:
		db, err := database.Connect(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		slog.Info("using sqlite ledger", "path", cfg.DatabasePath)
		return ledger.NewDBStore(db), nil
	case config.BackendXLSX:
		slog.Info("using workbook ledger", "path", cfg.LedgerPath)
		return ledger.NewFileStore(cfg.LedgerPath), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
