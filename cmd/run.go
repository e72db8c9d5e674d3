package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/ai/openai"
	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/pipeline"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/validation"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	redacted = "<redacted>"
)

var prompt = promptui.Select{
	Label: "Screen the documents?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen every résumé in the directory and write a report",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("dir", "", "directory with résumé files (default is resumes-dir from config)")
	runCmd.Flags().String("output-dir", "", "directory for the report file")
	runCmd.Flags().String("format", "", "report format: csv or xlsx")
	runCmd.Flags().String("sort", "", "report row order: listing, name or rank")
	runCmd.Flags().Int("workers", 0, "number of documents processed at once")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before screening")
	runCmd.Flags().Bool("dump-json", false, "dump all candidate records to a temporary json file")

	viper.BindPFlag("resumes-dir", runCmd.Flags().Lookup("dir"))
	viper.BindPFlag("output-dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("report.format", runCmd.Flags().Lookup("format"))
	viper.BindPFlag("report.sort", runCmd.Flags().Lookup("sort"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	logger := logger.ForRun(base, uuid.NewString())

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redactConfig(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := validateConfig(config); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	docs, err := document.List(config.ResumesDir, config.Extract.Extensions)
	if err != nil {
		logger.Fatal("listing documents", zap.Error(err), zap.String("dir", config.ResumesDir))
	}

	logger.Info("found documents", zap.Int("count", docs.Len()), zap.String("dir", config.ResumesDir))
	logger.Debug("documents", zap.Strings("names", docs.Names()))

	if docs.Len() > 0 && cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	screener, err := prepareScreener(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the screener", zap.Error(err))
	}

	started := time.Now()
	rep, err := screener.Run(ctx, docs)
	if err != nil {
		logger.Warn("screening interrupted. The report holds finished documents only.", zap.Error(err))
	}

	logger.Info("screening finished",
		zap.Int("recorded", rep.Total()),
		zap.Int("skipped", rep.Skipped),
		zap.Int("failed", rep.Failed),
		zap.Duration("elapsed", time.Since(started)),
	)

	if err := rep.Order(config.Report.Sort); err != nil {
		logger.Fatal("ordering the report", zap.Error(err))
	}

	path, err := report.Write(config.OutputDir, config.Report.Format, time.Now(), rep)
	if err != nil {
		logger.Fatal("writing the report", zap.Error(err))
	}

	if err := report.PrintSummary(os.Stdout, rep, path); err != nil {
		logger.Warn("printing the summary", zap.Error(err))
	}

	if cmd.Flag("dump-json").Value.String() == "true" {
		filename, err := rep.DumpToTmpFile()
		if err != nil {
			logger.Fatal("dump results to file", zap.Error(err))
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.ResumesDir) == "" {
		return errors.New("resumes-dir is required")
	}

	info, err := os.Stat(config.ResumesDir)
	if err != nil {
		return fmt.Errorf("resumes directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resumes directory %q is not a directory", config.ResumesDir)
	}

	if config.Report == nil {
		config.Report = &ReportConfig{}
	}
	config.Report.Format = strings.ToLower(strings.TrimSpace(config.Report.Format))
	if config.Report.Format == "" {
		config.Report.Format = report.FormatCSV
	}
	if err := report.ValidateFormat(config.Report.Format); err != nil {
		return err
	}
	config.Report.Sort = strings.ToLower(strings.TrimSpace(config.Report.Sort))
	if err := report.ValidateSort(config.Report.Sort); err != nil {
		return err
	}

	if config.Extract == nil {
		config.Extract = &ExtractConfig{}
	}
	if _, err := extract.OpenerFor(config.Extract.Backend); err != nil {
		return err
	}

	if config.AI == nil {
		return errors.New("ai configuration is required")
	}
	switch provider(config.AI) {
	case openai.ProviderName, gemini.ProviderName:
	default:
		return fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	if config.Validation == nil {
		config.Validation = &ValidationConfig{}
	}

	return nil
}

func provider(cfg *AIConfig) string {
	return strings.TrimSpace(strings.ToLower(cfg.Provider))
}

func prepareScreener(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	opener, err := extract.OpenerFor(config.Extract.Backend)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("building ai generator: %w", err)
	}

	validator := validation.New(config.Validation.Terms)
	for _, status := range validator.Describe() {
		logger.Debug("validation rule",
			zap.String("name", status.Name),
			zap.String("criterion", string(status.Criterion)),
			zap.Any("terms", status.Terms),
		)
	}

	return pipeline.New(pipeline.Config{Workers: config.Workers}, pipeline.Deps{
		Extractor:  extract.New(opener, extract.Config{MaxChars: config.Extract.MaxChars}),
		Classifier: ai.NewClassifier(generator, logger, config.AI.MaxLogLength),
		Validator:  validator,
		Logger:     logger,
	}), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, baseLogger *zap.Logger) (ai.Generator, error) {
	name := provider(cfg)

	env := []string{"SCREENER_API_KEY", "OPENAI_API_KEY"}
	if name == gemini.ProviderName {
		env = []string{"SCREENER_API_KEY", "GEMINI_API_KEY"}
	}

	// Local OpenAI-compatible servers usually need no key.
	apiKey, err := secrets.Load(secrets.Source{
		Name:     name + " api key",
		Value:    cfg.APIKey,
		File:     cfg.APIKeyFile,
		Env:      env,
		Optional: name == openai.ProviderName,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.api-key-file or SCREENER_API_KEY_FILE)", err)
	}

	genLogger := logger.WithFields(baseLogger, zap.Duration("ai_timeout", cfg.Timeout))

	if name == gemini.ProviderName {
		generator, err := gemini.NewGenerator(ctx, gemini.Options{
			APIKey:      apiKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}, genLogger)
		if err != nil {
			return nil, err
		}
		return generator, nil
	}

	generator, err := openai.NewGenerator(openai.Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      apiKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}, genLogger)
	if err != nil {
		return nil, err
	}
	return generator, nil
}

func redactConfig(config *Config) Config {
	clean := *config
	if config.AI != nil {
		aiCfg := *config.AI
		if aiCfg.APIKey != "" {
			aiCfg.APIKey = redacted
		}
		clean.AI = &aiCfg
	}
	return clean
}
