package main

import (
	"os"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/cmd"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/logging"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("Error while loading configuration", "error", err)
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
