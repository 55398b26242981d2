// ABOUTME: Entry point for the dexshare CLI
// ABOUTME: Command-line tool for monitoring Dexcom Share glucose readings

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/loopnlearn/dexshare/cmd"
	"github.com/loopnlearn/dexshare/logger"
)

func main() {
	// A .env file is optional; real env vars take precedence
	_ = godotenv.Load()
	logger.Init()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
