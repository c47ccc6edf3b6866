package main

import (
	"os"

	"deedles.dev/textq/internal/app"
	_ "deedles.dev/textq/internal/app/qtest"
)

var (
	version = "dev/unknown"
)

func main() {
	rootCmd := app.RootCmd()
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
