package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#79c3ee"))
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#78dba9"))
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e05f65"))
)

type chainBlock struct {
	Hash          string `json:"hash"`
	Number        uint64 `json:"number"`
	TimeStamp     uint64 `json:"timestamp"`
	PrevBlockHash string `json:"prev_block_hash"`
	Nonce         uint64 `json:"nonce"`
	TransCount    int    `json:"trans_count"`
}

// chainCmd represents the chain command
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain of blocks",
	Run: func(cmd *cobra.Command, args []string) {
		var blocks []chainBlock

		resp, err := client().R().SetResult(&blocks).Get("/v1/chain/list")
		if err != nil {
			log.Fatal(err)
		}
		if resp.IsError() {
			log.Fatalf("chain request failed: %s", resp.String())
		}

		for _, blk := range blocks {
			ts := time.Unix(int64(blk.TimeStamp), 0).UTC().Format(time.RFC3339)
			fmt.Println(headerStyle.Render(fmt.Sprintf("block %d", blk.Number)))
			fmt.Printf("  time  %s  nonce %d  txs %d\n", ts, blk.Nonce, blk.TransCount)
			fmt.Printf("  hash  %s\n", hashStyle.Render(blk.Hash))
			fmt.Printf("  prev  %s\n", hashStyle.Render(blk.PrevBlockHash))
		}
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
