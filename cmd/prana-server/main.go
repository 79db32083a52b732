package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pranaflow/prana-server/engineservice"
)

func main() {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	if err := engineservice.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
