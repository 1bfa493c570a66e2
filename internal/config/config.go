package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         App         `mapstructure:"app"`
	YouTube     YouTube     `mapstructure:"youtube"`
	Transcripts Transcripts `mapstructure:"transcripts"`
	Cache       Cache       `mapstructure:"cache"`
	Research    Research    `mapstructure:"research"`
	Output      Output      `mapstructure:"output"`
	Logging     Logging     `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug   bool   `mapstructure:"debug"`
	DataDir string `mapstructure:"data_dir"`
}

// YouTube holds YouTube Data API configuration
type YouTube struct {
	APIKey          string `mapstructure:"api_key"`
	Region          string `mapstructure:"region"`
	Timeout         string `mapstructure:"timeout"`
	DailyQuotaLimit int    `mapstructure:"daily_quota_limit"`
	SearchQuotaCost int    `mapstructure:"search_quota_cost"`
	DetailQuotaCost int    `mapstructure:"detail_quota_cost"`
}

// Transcripts holds transcript acquisition configuration
type Transcripts struct {
	MinLength        int                 `mapstructure:"min_length"`
	Timeout          string              `mapstructure:"timeout"`
	PreferredService string              `mapstructure:"preferred_service"`
	TTL              string              `mapstructure:"ttl"`
	Providers        TranscriptProviders `mapstructure:"providers"`
}

// TranscriptProviders holds per-provider credentials and endpoints.
// Paid providers join the cascade only when their key is set.
type TranscriptProviders struct {
	Tactiq     TactiqConfig     `mapstructure:"tactiq"`
	AssemblyAI AssemblyAIConfig `mapstructure:"assemblyai"`
	Deepgram   DeepgramConfig   `mapstructure:"deepgram"`
	Supadata   SupadataConfig   `mapstructure:"supadata"`
}

// TactiqConfig holds the free Tactiq transcript API configuration
type TactiqConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey       string `mapstructure:"api_key"`
	PollInterval string `mapstructure:"poll_interval"`
}

// DeepgramConfig holds Deepgram configuration
type DeepgramConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// SupadataConfig holds the Supadata transcript API configuration
type SupadataConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// Cache holds transcript cache configuration
type Cache struct {
	Directory string `mapstructure:"directory"`
	TTL       string `mapstructure:"ttl"`
}

// Research holds pipeline pacing and batch configuration
type Research struct {
	MaxPerTerm          int    `mapstructure:"max_per_term"`
	MinViews            int64  `mapstructure:"min_views"`
	TermDelay           string `mapstructure:"term_delay"`
	BatchConcurrency    int    `mapstructure:"batch_concurrency"`
	DelayBetweenBatches string `mapstructure:"delay_between_batches"`
	MaxDuration         string `mapstructure:"max_duration"`
}

// Output holds export configuration
type Output struct {
	Directory string `mapstructure:"directory"`
	Format    string `mapstructure:"format"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".vidscout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the global configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.data_dir", ".vidscout")

	// YouTube defaults (quota costs follow the Data API v3 pricing table)
	viper.SetDefault("youtube.region", "US")
	viper.SetDefault("youtube.timeout", "15s")
	viper.SetDefault("youtube.daily_quota_limit", 10000)
	viper.SetDefault("youtube.search_quota_cost", 100)
	viper.SetDefault("youtube.detail_quota_cost", 1)

	// Transcript defaults
	viper.SetDefault("transcripts.min_length", 50)
	viper.SetDefault("transcripts.timeout", "15s")
	viper.SetDefault("transcripts.preferred_service", "auto")
	viper.SetDefault("transcripts.ttl", "168h")
	viper.SetDefault("transcripts.providers.tactiq.endpoint", "https://tactiq-apps-prod.tactiq.io/transcript")
	viper.SetDefault("transcripts.providers.assemblyai.poll_interval", "3s")
	viper.SetDefault("transcripts.providers.supadata.endpoint", "https://api.supadata.ai/v1/youtube/transcript")

	// Cache defaults
	viper.SetDefault("cache.directory", ".vidscout")
	viper.SetDefault("cache.ttl", "168h")

	// Research defaults
	viper.SetDefault("research.max_per_term", 10)
	viper.SetDefault("research.min_views", 0)
	viper.SetDefault("research.term_delay", "1s")
	viper.SetDefault("research.batch_concurrency", 2)
	viper.SetDefault("research.delay_between_batches", "5s")
	viper.SetDefault("research.max_duration", "10m")

	// Output defaults
	viper.SetDefault("output.directory", "research")
	viper.SetDefault("output.format", "json")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"GOOGLE_API_KEY",
	})

	bindEnvKeys("transcripts.providers.assemblyai.api_key", []string{
		"ASSEMBLYAI_API_KEY",
	})

	bindEnvKeys("transcripts.providers.deepgram.api_key", []string{
		"DEEPGRAM_API_KEY",
	})

	bindEnvKeys("transcripts.providers.supadata.api_key", []string{
		"SUPADATA_API_KEY",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"VIDSCOUT_DEBUG",
	})

	bindEnvKeys("logging.level", []string{
		"VIDSCOUT_LOG_LEVEL",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig checks durations and numeric bounds
func validateConfig(config *Config) error {
	durations := map[string]string{
		"youtube.timeout":                 config.YouTube.Timeout,
		"transcripts.timeout":             config.Transcripts.Timeout,
		"transcripts.ttl":                 config.Transcripts.TTL,
		"cache.ttl":                       config.Cache.TTL,
		"research.term_delay":             config.Research.TermDelay,
		"research.delay_between_batches":  config.Research.DelayBetweenBatches,
		"research.max_duration":           config.Research.MaxDuration,
		"transcripts.providers.assemblyai.poll_interval": config.Transcripts.Providers.AssemblyAI.PollInterval,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	if config.Research.BatchConcurrency < 1 {
		return fmt.Errorf("research.batch_concurrency must be at least 1")
	}

	return nil
}

// Duration parses a configured duration string, falling back when unset or invalid.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Convenience accessors for commonly used values
func GetApp() App                 { return Get().App }
func GetYouTube() YouTube         { return Get().YouTube }
func GetTranscripts() Transcripts { return Get().Transcripts }
func GetCache() Cache             { return Get().Cache }
func GetResearch() Research       { return Get().Research }
func GetOutput() Output           { return Get().Output }
func GetLogging() Logging         { return Get().Logging }

func GetYouTubeAPIKey() string    { return Get().YouTube.APIKey }
func GetCacheDirectory() string   { return Get().Cache.Directory }
func GetOutputDirectory() string  { return Get().Output.Directory }
