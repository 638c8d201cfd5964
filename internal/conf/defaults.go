// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "RockBee-Monitor")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/rockbee.log")

	viper.SetDefault("classifier.modelpath", "model/rock_bee_model.tflite")
	viper.SetDefault("classifier.labelspath", "")
	viper.SetDefault("classifier.threshold", 0.7)
	viper.SetDefault("classifier.threads", 0)
	viper.SetDefault("classifier.usexnnpack", false)

	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "8000")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "logs/web.log")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "rock_bee_detections.db")
}
