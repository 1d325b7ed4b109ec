package main

import (
	"os"

	"github.com/gestion-frais/expense-ledger/cmd/expensectl/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
