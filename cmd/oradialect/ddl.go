package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"oradialect/internal/config"
	"oradialect/internal/dialect/oracle"
	"oradialect/internal/migration"
	"oradialect/internal/output"
	schema "oradialect/internal/parser"
)

type ddlFlags struct {
	format   string
	outFile  string
	rollback bool
}

func ddlCmd(cfg *config.Config) *cobra.Command {
	var flags ddlFlags

	cmd := &cobra.Command{
		Use:   "ddl [schema.toml]",
		Short: "Generate Oracle DDL for a TOML schema",
		Long: `Generate the CREATE TABLE, COMMENT, and CREATE INDEX statements for a TOML
schema file. The rollback statements are printed as comments, or on their own
with --rollback.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Override(&cfg.Format, cmd.Flags().Changed("format"), flags.format)

			m, err := loadMigration(cfg, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if flags.outFile != "" {
				f, err := os.Create(flags.outFile)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := writeDDL(w, cfg.Format, flags.rollback, m); err != nil {
				return err
			}
			if flags.outFile != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output saved to %s\n", flags.outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "sql", "Output format: sql or json")
	cmd.Flags().StringVarP(&flags.outFile, "output", "o", "", "Write the output to a file")
	cmd.Flags().BoolVar(&flags.rollback, "rollback", false, "Print only the rollback statements")
	return cmd
}

func writeDDL(w io.Writer, format string, rollback bool, m *migration.Migration) error {
	if rollback {
		return output.WriteRollback(w, m)
	}
	f, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	return output.WriteMigration(w, f, m)
}

// loadMigration parses the schema named by args or the config and builds
// its DDL.
func loadMigration(cfg *config.Config, args []string) (*migration.Migration, error) {
	path := cfg.Schema
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no schema file given; pass one or set schema in %s", config.DefaultFile)
	}

	db, err := schema.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	m, err := oracle.New().GenerateSchema(db)
	if err != nil {
		return nil, fmt.Errorf("failed to generate DDL: %w", err)
	}
	logger.Debug("generated ddl", "schema", path, "tables", len(db.Tables), "statements", len(m.SQLStatements()))
	return m, nil
}
