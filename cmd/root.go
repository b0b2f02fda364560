package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/calcexam/internal/answer"
	"github.com/abhisek/calcexam/internal/bank"
	"github.com/abhisek/calcexam/internal/config"
	"github.com/abhisek/calcexam/internal/exam"
	"github.com/abhisek/calcexam/internal/i18n"
	"github.com/abhisek/calcexam/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "calcexam",
	Short: "Differential calculus exam in the terminal",
	Long: `calcexam runs a timed calculus exam (limits, derivatives and critical
points), grades free-form answers by symbolic equivalence and flags
attempts that were answered suspiciously fast or slow.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().String("save", "", "Write the session as JSON to this file on exit")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps holds everything a command needs to run an exam.
type deps struct {
	cfg        config.Config
	logger     *zap.Logger
	loc        *i18n.Localizer
	normalizer *answer.Normalizer
	bank       *bank.Bank
	engine     *exam.Engine
}

// loadDeps resolves the configuration and wires the exam. Terminal
// front ends pass quiet so logs only go to --log-file.
func loadDeps(cmd *cobra.Command, quiet bool) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var log *zap.Logger
	if quiet {
		log, err = logger.NewQuiet(cfg.LoggerOptions())
	} else {
		log, err = logger.New(cfg.LoggerOptions())
	}
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}

	loc, err := i18n.New(cfg.Lang, log)
	if err != nil {
		return nil, err
	}

	n := answer.NewNormalizer(cfg.NormalizerOptions())
	b, err := cfg.LoadBank(n)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}

	engine := exam.NewEngine(b, answer.NewChecker(n, log),
		exam.WithPolicy(cfg.Policy()),
		exam.WithLogger(log))

	return &deps{cfg: cfg, logger: log, loc: loc, normalizer: n, bank: b, engine: engine}, nil
}

// close flushes buffered log entries.
func (d *deps) close() {
	_ = d.logger.Sync()
}
