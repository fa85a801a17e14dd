package main

import "github.com/powledger/powledger/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
