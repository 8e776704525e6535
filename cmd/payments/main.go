package main

import (
	"fmt"
	"os"

	"github.com/djweb/payments/cmd/payments/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
