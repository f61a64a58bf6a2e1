package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wordsalad/internal/config"
	"wordsalad/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wordsalad",
	Short: "WordSalad - topic + word count paragraph generator",
	Long: `WordSalad turns compact commands such as "moon30" into a paragraph of
roughly the requested length, grounded on the topic's Wikipedia summary.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.wordsalad")
	}

	// 环境变量设置，如 WORDSALAD_AI_API_KEY
	viper.SetEnvPrefix("WORDSALAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

// setDefaults 默认值与 config.Default() 保持一致
func setDefaults() {
	d := config.Default()

	// Server
	viper.SetDefault("server.host", d.Server.Host)
	viper.SetDefault("server.port", d.Server.Port)
	viper.SetDefault("server.mode", d.Server.Mode)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	// AI
	viper.SetDefault("ai.provider", d.AI.Provider)
	viper.SetDefault("ai.model", d.AI.Model)
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.base_url", "")
	viper.SetDefault("ai.timeout", d.AI.Timeout)
	viper.SetDefault("ai.options.temperature", d.AI.Options.Temperature)
	viper.SetDefault("ai.options.top_p", d.AI.Options.TopP)

	// Generation
	viper.SetDefault("generation.min_words", d.Generation.MinWords)
	viper.SetDefault("generation.max_words", d.Generation.MaxWords)
	viper.SetDefault("generation.token_multiplier", d.Generation.TokenMultiplier)
	viper.SetDefault("generation.context_max_chars", d.Generation.ContextMaxChars)
	viper.SetDefault("generation.system_prompt", d.Generation.SystemPrompt)

	// Wikipedia
	viper.SetDefault("wikipedia.enabled", d.Wikipedia.Enabled)
	viper.SetDefault("wikipedia.base_url", "")
	viper.SetDefault("wikipedia.language", d.Wikipedia.Language)
	viper.SetDefault("wikipedia.user_agent", d.Wikipedia.UserAgent)
	viper.SetDefault("wikipedia.timeout", d.Wikipedia.Timeout)

	// Log
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)
	viper.SetDefault("log.output", d.Log.Output)
	viper.SetDefault("log.time_format", d.Log.TimeFormat)

	// Metrics / Trace
	viper.SetDefault("metrics.enabled", d.Metrics.Enabled)
	viper.SetDefault("metrics.path", d.Metrics.Path)
	viper.SetDefault("trace.enabled", d.Trace.Enabled)
	viper.SetDefault("trace.service_name", d.Trace.ServiceName)
	viper.SetDefault("trace.endpoint", "localhost:4317")
	viper.SetDefault("trace.sample_rate", d.Trace.SampleRate)

	// CORS
	viper.SetDefault("cors.allowed_origins", []string{"*"})
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
