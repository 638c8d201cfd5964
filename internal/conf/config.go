// config.go: configuration settings for the rock bee monitoring backend
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to log file
}

// ClassifierSettings contains the image classifier configuration.
type ClassifierSettings struct {
	ModelPath  string  // path to the TensorFlow Lite model file
	LabelsPath string  // path to the class labels file, empty for built-in labels
	Threshold  float64 // confidence threshold for a confirmed detection
	Threads    int     // number of CPU threads for inference, 0 to use all
	UseXNNPACK bool    // true to use XNNPACK delegate for inference acceleration
}

// WebServerSettings contains the HTTP API configuration.
type WebServerSettings struct {
	Host string    // host interface to bind to
	Port string    // port to listen on
	Log  LogConfig // web server log settings
}

// Settings contains all runtime settings for the application.
type Settings struct {
	Debug bool // true to enable debug mode

	Main struct {
		Name string    // name of this node, used to identify the source of detections
		Log  LogConfig // main log settings
	}

	Classifier ClassifierSettings
	WebServer  WebServerSettings

	Output struct {
		SQLite struct {
			Enabled bool   // true to enable SQLite output
			Path    string // path to SQLite database file
		}
	}
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the current settings instance, nil if Load has not been called.
func Setting() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Get OS specific config paths
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	// Assign config paths to Viper
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Read configuration file, defaults apply when no file is found
	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// current working directory first so a local config wins over the user one.
func GetDefaultConfigPaths() ([]string, error) {
	configPaths := []string{"."}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config directory: %w", err)
	}
	configPaths = append(configPaths, filepath.Join(userConfigDir, "rockbee"))

	return configPaths, nil
}
