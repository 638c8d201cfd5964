// Package serve implements the HTTP server subcommand.
package serve

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/api"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/classifier"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/datastore"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/logging"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/observability"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the detection HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunServer(settings)
		},
	}

	cmd.PersistentFlags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to listen on")
	cmd.PersistentFlags().StringVar(&settings.WebServer.Host, "host", viper.GetString("webserver.host"), "Host interface to bind to")

	return cmd
}

// RunServer wires the datastore, classifier and metrics into the HTTP
// server and runs it until interrupted.
func RunServer(settings *conf.Settings) error {
	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no output database is enabled in the configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open detection store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error("failed to close detection store", "error", err)
		}
	}()

	// Model load failure is fatal, the process cannot serve without it.
	clf, err := classifier.New(settings, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}
	defer clf.Close()

	server, err := api.NewServer(settings,
		api.WithDataStore(store),
		api.WithClassifier(clf),
		api.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	return server.Start()
}
