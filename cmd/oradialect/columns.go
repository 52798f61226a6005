package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"oradialect/internal/apply"
	"oradialect/internal/config"
	"oradialect/internal/dialect/oracle"
	"oradialect/internal/output"
)

func columnsCmd(cfg *config.Config) *cobra.Command {
	var dsn, format string

	cmd := &cobra.Command{
		Use:   "columns <table>",
		Short: "Show the live columns of a table as the binder sees them",
		Long: `Read the column names and native data types of a table from the catalog,
through the same cache used for parameter binding and default-value inserts.
Table names are matched exactly, so quote-cased names must be given as stored.`,
		Args: cobra.ExactArgs(1),
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

			cache := oracle.New().Cache()
			table := args[0]
			cols, err := cache.Columns(ctx, db, table)
			if err != nil {
				return fmt.Errorf("failed to read columns of %s: %w", table, err)
			}
			count, err := cache.ColumnCount(ctx, db, table)
			if err != nil {
				return fmt.Errorf("failed to count columns of %s: %w", table, err)
			}

			out, err := f.FormatColumns(table, cols, count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "godror connection string")
	cmd.Flags().StringVarP(&format, "format", "f", "sql", "Output format: sql or json")
	return cmd
}
