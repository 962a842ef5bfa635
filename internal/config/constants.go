package config

import "edaclean/internal/outliers"

// Application constants
const (
	AppName    = "edaclean"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. EDA_CLEANING_MULTIPLIER.
	EnvPrefix = "EDA"

	// ConfigFileEnv names the variable holding an explicit config file path.
	ConfigFileEnv = "EDA_CONFIG_FILE"

	DefaultConfigFile = "edaclean.yaml"
	DefaultLogFile    = "logs/edaclean.log"

	DefaultMultiplier = outliers.DefaultMultiplier
)
