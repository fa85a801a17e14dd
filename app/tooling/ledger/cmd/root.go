// Package cmd contains the ledger operator CLI. Every command talks to a
// running node over its public HTTP API.
package cmd

import (
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var url string

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Operator tooling for the proof-of-work ledger node",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// client constructs the HTTP client the commands share.
func client() *resty.Client {
	return resty.New().SetBaseURL(url)
}
