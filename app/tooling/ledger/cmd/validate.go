package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run a full chain integrity check on the node",
	Run: func(cmd *cobra.Command, args []string) {
		var result struct {
			Valid        bool    `json:"valid"`
			FailingBlock *uint64 `json:"failing_block"`
			Reason       string  `json:"reason"`
		}

		resp, err := client().R().SetResult(&result).Get("/v1/chain/validate")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("validation request failed: %s", resp.String())
		}

		if result.Valid {
			fmt.Println(okStyle.Render("chain is valid"))
			return
		}

		if result.FailingBlock != nil {
			fmt.Println(badStyle.Render(fmt.Sprintf("chain is INVALID at block %d", *result.FailingBlock)))
		} else {
			fmt.Println(badStyle.Render("chain is INVALID"))
		}
		fmt.Println(result.Reason)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
