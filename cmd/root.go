package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/validation"
)

const (
	app = "resume-screener"
)

type Config struct {
	ResumesDir string            `mapstructure:"resumes-dir"`
	OutputDir  string            `mapstructure:"output-dir"`
	Workers    int               `mapstructure:"workers"`
	Report     *ReportConfig     `mapstructure:"report"`
	Extract    *ExtractConfig    `mapstructure:"extract"`
	AI         *AIConfig         `mapstructure:"ai"`
	Validation *ValidationConfig `mapstructure:"validation"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
	Sort   string `mapstructure:"sort"`
}

type ExtractConfig struct {
	Backend    string   `mapstructure:"backend"`
	MaxChars   int      `mapstructure:"max-chars"`
	Extensions []string `mapstructure:"extensions"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base-url"`
	Model        string        `mapstructure:"model"`
	APIKey       string        `mapstructure:"api-key"`
	APIKeyFile   string        `mapstructure:"api-key-file"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max-tokens"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type ValidationConfig struct {
	Terms validation.Terms `mapstructure:"terms"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener classifies a directory of résumés with a language model and writes a candidate report",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := viper.BindEnv("ai.api-key-file", "SCREENER_API_KEY_FILE"); err != nil {
		log.Fatalf("binding SCREENER_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("resumes-dir", "resumes")
	v.SetDefault("output-dir", ".")
	v.SetDefault("workers", 1)
	v.SetDefault("report.format", report.FormatCSV)
	v.SetDefault("report.sort", report.SortListing)
	v.SetDefault("extract.backend", extract.BackendFitz)
	v.SetDefault("extract.max-chars", extract.DefaultMaxChars)
	v.SetDefault("extract.extensions", []string{"pdf"})
	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.base-url", "http://localhost:1234/v1")
	v.SetDefault("ai.model", "mistralai/mistral-7b-instruct-v0.3")
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.max-tokens", 500)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.timeout", 0)
}

func initConfig() {
	// Config needed only for run command now.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional. An explicit one must be readable.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
