// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"os"

	log "github.com/mgutz/logxi/v1"
	"github.com/spf13/cobra"

	"oradialect/internal/config"
)

var logger = log.New("oradialect")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "oradialect",
		Short:         "Oracle dialect tool: DDL generation, catalog introspection, and migration apply",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to oradialect.toml (default: ./oradialect.toml if present)")

	rootCmd.AddCommand(
		ddlCmd(cfg),
		applyCmd(cfg),
		columnsCmd(cfg),
		introspectCmd(cfg),
	)
	return rootCmd
}
