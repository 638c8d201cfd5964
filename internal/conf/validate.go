// conf/validate.go settings validation
package conf

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidateSettings checks the loaded settings for values that would prevent
// the application from starting.
func ValidateSettings(settings *Settings) error {
	var validationErrors []string

	if settings.Classifier.ModelPath == "" {
		validationErrors = append(validationErrors, "classifier model path must not be empty")
	}

	if settings.Classifier.Threshold <= 0 || settings.Classifier.Threshold > 1 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("classifier threshold must be between 0 and 1, got %f", settings.Classifier.Threshold))
	}

	if settings.Classifier.Threads < 0 {
		validationErrors = append(validationErrors,
			fmt.Sprintf("classifier threads must not be negative, got %d", settings.Classifier.Threads))
	}

	if settings.WebServer.Port != "" {
		if port, err := strconv.Atoi(settings.WebServer.Port); err != nil || port < 1 || port > 65535 {
			validationErrors = append(validationErrors,
				fmt.Sprintf("invalid web server port: %s", settings.WebServer.Port))
		}
	}

	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		validationErrors = append(validationErrors, "SQLite output is enabled but path is empty")
	}

	if len(validationErrors) > 0 {
		errMsg := "settings validation failed:"
		for _, e := range validationErrors {
			errMsg += "\n- " + e
		}
		return errors.New(errMsg)
	}

	return nil
}
