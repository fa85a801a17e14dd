package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount float64
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the pending pool",
	Run: func(cmd *cobra.Command, args []string) {
		payload := map[string]any{
			"from":   from,
			"to":     to,
			"amount": amount,
		}

		var result struct {
			Status  string `json:"status"`
			Pending int    `json:"pending"`
		}

		resp, err := client().R().SetBody(payload).SetResult(&result).Post("/v1/tx/submit")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("node rejected transaction: %s", resp.String())
		}

		fmt.Printf("%s, pending: %d\n", result.Status, result.Pending)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Sender of the transaction.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Receiver of the transaction.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}
