package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/artpar/thermogate/adapters/postgres"
	"github.com/artpar/thermogate/adapters/sqlite"
	"github.com/artpar/thermogate/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the thermogate configuration file.

Checks:
  - YAML syntax is valid
  - Values are in range (port, token length, driver, log level)
  - Database is reachable (optional)

Examples:
  thermogate validate
  thermogate validate --config /etc/thermogate/thermogate.yaml --check-database`,
	RunE: runValidate,
}

var validateCheckDatabase bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckDatabase, "check-database", false, "check that the database is reachable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", cfgFile)

	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Fprintf(out, "  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Fprintf(out, "  %s Config file exists\n", checkMark)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config syntax valid\n", checkMark)

	printSummary(out, cfg)

	if validateCheckDatabase {
		if err := checkDatabase(cfg.Database); err != nil {
			fmt.Fprintf(out, "  %s Database reachable\n", crossMark)
			fmt.Fprintf(out, "      Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "  %s Database reachable\n", checkMark)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func printSummary(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "  %s Listen: %s\n", checkMark, cfg.Server.Addr())
	fmt.Fprintf(out, "  %s Keys: %s + %d hex chars\n", checkMark, cfg.Auth.KeyPrefix, cfg.Auth.TokenLength)
	fmt.Fprintf(out, "  %s Revocation: mask not found=%t, foreign=%t\n", checkMark, cfg.Auth.MaskRevokeNotFound, cfg.Auth.AllowForeignRevoke)
	fmt.Fprintf(out, "  %s Database: %s\n", checkMark, cfg.Database.Driver)
	if cfg.Metrics.Enabled {
		fmt.Fprintf(out, "  %s Metrics: %s\n", checkMark, cfg.Metrics.Path)
	}
}

func checkDatabase(cfg config.DatabaseConfig) error {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pool, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		pool.Close()
		return nil
	default:
		return nil
	}
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
