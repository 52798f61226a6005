package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oradialect/internal/apply"
	"oradialect/internal/config"
	"oradialect/internal/dialect"
	"oradialect/internal/dialect/oracle"
	"oradialect/internal/introspect"
	"oradialect/internal/output"
)

func introspectCmd(cfg *config.Config) *cobra.Command {
	var dsn, format string

	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Read the current schema and print the DDL that recreates it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Override(&cfg.DSN, cmd.Flags().Changed("dsn"), dsn)
			config.Override(&cfg.Format, cmd.Flags().Changed("format"), format)

			f, err := output.NewFormatter(cfg.Format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := apply.Open(ctx, cfg.DSN)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer db.Close()

			in, err := introspect.NewIntrospecter(dialect.Oracle)
			if err != nil {
				return err
			}
			schemaDB, err := in.Introspect(ctx, db)
			if err != nil {
				return fmt.Errorf("failed to introspect schema: %w", err)
			}
			logger.Info("introspected schema", "schema", schemaDB.Name, "tables", len(schemaDB.Tables))

			m, err := oracle.New().GenerateSchema(schemaDB)
			if err != nil {
				return fmt.Errorf("failed to generate DDL: %w", err)
			}
			return output.WriteMigration(cmd.OutOrStdout(), f, m)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "godror connection string")
	cmd.Flags().StringVarP(&format, "format", "f", "sql", "Output format: sql or json")
	return cmd
}
