package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thermogate",
	Short: "Temperature conversion API with revocable API keys",
	Long: `thermogate serves Fahrenheit/Celsius conversions behind HTTP Basic
authentication. Anyone can request an API key; every conversion made with a
valid key is counted.

Quick start:
  thermogate serve      # Start the server on 127.0.0.1:8080
  curl localhost:8080/api-key
  curl -u <key>: localhost:8080/api/to-celsius/212

Other commands:
  thermogate validate   # Validate configuration
  thermogate version    # Print version information`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "thermogate.yaml", "config file path")
}
