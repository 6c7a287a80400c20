package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillmatch/internal/analysis"
	"github.com/spigell/skillmatch/internal/filtering"
	"github.com/spigell/skillmatch/internal/server"
)

const (
	app = "skillmatch"
)

type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Advisory AdvisoryConfig `mapstructure:"advisory"`
	Serve    server.Config  `mapstructure:"serve"`
	Batch    BatchConfig    `mapstructure:"batch"`
}

type CatalogConfig struct {
	AllowedShort   []string `mapstructure:"allowed-short"`
	ExtraSkills    []string `mapstructure:"extra-skills"`
	ExtraBlacklist []string `mapstructure:"extra-blacklist"`
}

type AdvisoryConfig struct {
	Enabled       bool             `mapstructure:"enabled"`
	Provider      string           `mapstructure:"provider"`
	Timeout       time.Duration    `mapstructure:"timeout"`
	TopSkills     int              `mapstructure:"top-skills"`
	ExcerptLength int              `mapstructure:"excerpt-length"`
	MaxLogLength  int              `mapstructure:"max-log-length"`
	Gemini        GeminiConfig     `mapstructure:"gemini"`
	OpenRouter    OpenRouterConfig `mapstructure:"openrouter"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
}

type BatchConfig struct {
	Concurrency      int `mapstructure:"concurrency"`
	filtering.Config `mapstructure:",squash"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "skillmatch scores how well a resume matches a job description",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	for key, env := range map[string]string{
		"advisory.gemini.model":     "GEMINI_MODEL",
		"advisory.openrouter.model": "OPENROUTER_MODEL",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("advisory.provider", providerGemini)
	v.SetDefault("advisory.timeout", analysis.DefaultTimeout)
	v.SetDefault("advisory.top-skills", analysis.DefaultTopSkills)
	v.SetDefault("advisory.excerpt-length", analysis.DefaultExcerptLength)
	v.SetDefault("serve.listen", server.DefaultListen)
	v.SetDefault("serve.rate-limit", server.DefaultRateLimit)
	v.SetDefault("serve.rate-window", server.DefaultRateWindow)
	v.SetDefault("batch.concurrency", defaultConcurrency)
}

func initConfig() {
	// A missing .env file is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.AllSettings())
}

func decodeConfig(settings map[string]any) (*Config, error) {
	config := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}
