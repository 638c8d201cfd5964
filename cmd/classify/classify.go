// Package classify implements offline classification of image files.
package classify

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/classifier"
	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
)

// Command creates the classify command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [image...]",
		Short: "Classify one or more image files without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(settings, args)
		},
	}
}

// runClassify scores each image file and prints the result to stdout.
func runClassify(settings *conf.Settings, paths []string) error {
	clf, err := classifier.New(settings, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize classifier: %w", err)
	}
	defer clf.Close()

	for _, path := range paths {
		imageData, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := clf.Predict(imageData)
		if err != nil {
			return fmt.Errorf("failed to classify %s: %w", path, err)
		}

		fmt.Printf("%s: %s (confidence %.2f, status %s)\n",
			path, result.Label, result.Confidence, result.Status)
	}

	return nil
}
