package main

import (
	"fmt"

	"github.com/gdg-garage/iftar-registration/internal/ledger"
	"github.com/gdg-garage/iftar-registration/internal/report"
	"github.com/spf13/cobra"
)

func reportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print registration statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			regs, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			return report.WriteText(cmd.OutOrStdout(), report.Build(regs), cfg.Currency)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [workbook]",
		Short: "Add the Meals Details column to a workbook written by an older version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.LedgerPath
			if len(args) == 1 {
				path = args[0]
			}

			n, err := ledger.MigrateLegacy(path)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already up to date\n", path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d rows in %s\n", n, path)
			return nil
		},
	}
}
