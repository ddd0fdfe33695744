package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/thermogate/bootstrap"
	"github.com/artpar/thermogate/config"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the thermogate HTTP server.

The server will:
  - Load configuration from thermogate.yaml (or --config)
  - Or load configuration from THERMOGATE_* environment variables
  - Open the subscriber store (memory, sqlite or postgres)
  - Serve key issuance, revocation and the guarded conversion API

API keys and usage counters live in memory and are lost on restart.

Environment variables:
  THERMOGATE_SERVER_HOST      - Bind address (default: 127.0.0.1)
  THERMOGATE_SERVER_PORT      - Server port (default: 8080)
  THERMOGATE_DATABASE_DRIVER  - memory, sqlite or postgres (default: memory)
  THERMOGATE_DATABASE_DSN     - Database path or URL
  THERMOGATE_LOG_LEVEL        - Log level: debug, info, warn, error

Examples:
  thermogate serve
  thermogate serve --config /etc/thermogate/thermogate.yaml
  thermogate serve --hot-reload=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "reload the config file on change or SIGHUP")
}

func runServe(cmd *cobra.Command, args []string) error {
	bootstrap.Version = version

	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}
		if !hasConfigFile {
			fmt.Fprintln(cmd.ErrOrStderr(), "Running with defaults and environment variables (no config file)")
		}
		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
