package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

// genesisCmd represents the genesis command
var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Print the genesis information for the chain",
	Run: func(cmd *cobra.Command, args []string) {
		var result struct {
			Date       time.Time `json:"date"`
			ChainName  string    `json:"chain_name"`
			Difficulty uint      `json:"difficulty"`
		}

		resp, err := client().R().SetResult(&result).Get("/v1/genesis/list")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("genesis request failed: %s", resp.String())
		}

		fmt.Printf("chain      %s\n", result.ChainName)
		fmt.Printf("date       %s\n", result.Date.Format(time.RFC3339))
		fmt.Printf("difficulty %d\n", result.Difficulty)
	},
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}
