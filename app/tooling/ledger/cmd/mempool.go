package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// mempoolCmd represents the mempool command
var mempoolCmd = &cobra.Command{
	Use:   "mempool",
	Short: "Print the pending transactions in arrival order",
	Run: func(cmd *cobra.Command, args []string) {
		var txs []map[string]any

		resp, err := client().R().SetResult(&txs).Get("/v1/tx/uncommitted/list")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("mempool request failed: %s", resp.String())
		}

		if len(txs) == 0 {
			fmt.Println("mempool is empty")
			return
		}

		for i, tx := range txs {
			fmt.Printf("%3d: %v\n", i, tx)
		}
	},
}

func init() {
	rootCmd.AddCommand(mempoolCmd)
}
