package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oradialect/internal/apply"
	"oradialect/internal/config"
)

type applyFlags struct {
	dsn                   string
	dryRun                bool
	transaction           bool
	allowNonTransactional bool
	unsafe                bool
}

func applyCmd(cfg *config.Config) *cobra.Command {
	var flags applyFlags

	cmd := &cobra.Command{
		Use:   "apply [schema.toml]",
		Short: "Create the tables of a TOML schema in a live Oracle database",
		Long: `Generate the DDL for a TOML schema and execute it against the database
given by --dsn. Oracle commits DDL implicitly, so --transaction only protects
migrations made entirely of DML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			config.Override(&cfg.DSN, fs.Changed("dsn"), flags.dsn)
			config.Override(&cfg.Transaction, fs.Changed("transaction"), flags.transaction)
			config.Override(&cfg.AllowNonTransactional, fs.Changed("allow-non-transactional"), flags.allowNonTransactional)
			config.Override(&cfg.Unsafe, fs.Changed("unsafe"), flags.unsafe)

			m, err := loadMigration(cfg, args)
			if err != nil {
				return err
			}

			applier := apply.NewApplier(apply.Options{
				DSN:                   cfg.DSN,
				DryRun:                flags.dryRun,
				Transaction:           cfg.Transaction,
				AllowNonTransactional: cfg.AllowNonTransactional,
				Unsafe:                cfg.Unsafe,
				Out:                   cmd.OutOrStdout(),
			})

			ctx := cmd.Context()
			if !flags.dryRun {
				if err := applier.Connect(ctx); err != nil {
					return fmt.Errorf("failed to connect: %w", err)
				}
				defer applier.Close()
			}

			stmts := m.SQLStatements()
			preflight := apply.PreflightChecks(stmts, cfg.Unsafe)
			if err := applier.Apply(ctx, stmts, preflight); err != nil {
				logger.Error("apply failed", "err", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "godror connection string, e.g. user=app password=secret connectString=host:1521/FREEPDB1")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the statements and preflight checks without executing")
	cmd.Flags().BoolVar(&flags.transaction, "transaction", false, "Wrap the migration in a transaction when possible")
	cmd.Flags().BoolVar(&flags.allowNonTransactional, "allow-non-transactional", false, "Run DDL unwrapped when --transaction is set")
	cmd.Flags().BoolVar(&flags.unsafe, "unsafe", false, "Allow statements that remove data")
	return cmd
}
