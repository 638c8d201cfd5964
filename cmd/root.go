package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/cmd/classify"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/cmd/serve"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rockbee",
		Short: "Rock bee colony monitoring CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		serve.Command(settings),
		classify.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Classifier.ModelPath, "model", viper.GetString("classifier.modelpath"), "Path to the TensorFlow Lite model file")
	rootCmd.PersistentFlags().StringVar(&settings.Classifier.LabelsPath, "labels", viper.GetString("classifier.labelspath"), "Path to the class labels file")
	rootCmd.PersistentFlags().Float64VarP(&settings.Classifier.Threshold, "threshold", "t", viper.GetFloat64("classifier.threshold"), "Confidence threshold for confirmed detections, value between 0.1 to 1.0")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
