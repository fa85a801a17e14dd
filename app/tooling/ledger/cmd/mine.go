package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Signal the node to mine the pending transactions",
	Run: func(cmd *cobra.Command, args []string) {
		var result struct {
			Status string `json:"status"`
		}

		resp, err := client().R().SetResult(&result).Get("/v1/mining/signal")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("node refused mining signal: %s", resp.String())
		}

		fmt.Println(result.Status)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
