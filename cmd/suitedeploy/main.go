package main

import (
	"os"

	"suitedeploy/cmd/suitedeploy/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
