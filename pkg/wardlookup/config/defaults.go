package config

import "github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"

const (
	defaultPostcodeColumn       = "postcode"
	defaultDelaySeconds         = 0.1
	defaultSingleTimeoutSeconds = 10
	defaultBatchTimeoutSeconds  = 30
	defaultLogLevel             = "info"
	defaultLogFormat            = "console"

	defaultConfigLocation = "~/.config/wardlookup/config.toml"
	projectConfigFile     = "wardlookup.toml"
	envBaseURL            = "WARDLOOKUP_BASE_URL"
	envUserAgent          = "WARDLOOKUP_USER_AGENT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:              postcodes.DefaultBaseURL,
			UserAgent:            postcodes.DefaultUserAgent,
			BatchSize:            postcodes.MaxBatchSize,
			SingleTimeoutSeconds: defaultSingleTimeoutSeconds,
			BatchTimeoutSeconds:  defaultBatchTimeoutSeconds,
		},
		Lookup: Lookup{
			PostcodeColumn: defaultPostcodeColumn,
			DelaySeconds:   defaultDelaySeconds,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
