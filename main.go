package main

import (
	"fmt"
	"os"

	"github.com/CynaCons/powertimeline-layout/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
