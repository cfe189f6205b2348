package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/frontend"
	"github.com/msto63/minic/internal/report"
	"github.com/msto63/minic/pkg/core/config"
	"github.com/msto63/minic/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	appConfig *config.Config
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "minic - front end for a small imperative language",
	Long: `minic lexes and parses programs written in a small imperative
language and checks that every variable is declared exactly once
before it is assigned.

Commands:
  check    - validate source files and print the symbol table
  tokens   - print the token list of a source file
  repl     - interactive editor that checks while you type
  version  - print version information`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the command tree. Errors that were not already reported to
// the user are printed to stderr.
func Execute() error {
	err := rootCmd.Execute()
	var reported *exitError
	if err != nil && !errors.As(err, &reported) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $MINIC_CONFIG or ./minic.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

// setup loads the configuration and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.General.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.General.LogFormat = logFormat
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	// The editor owns the terminal, so it only logs to the log file
	var output io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == "repl" {
		output = io.Discard
	}

	logCfg := logging.DefaultLoggerConfig("minic")
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	logCfg.Output = output
	logCfg.File = cfg.General.LogFile

	l, err := logging.NewLogger(logCfg)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.Debug("Configuration loaded", "command", cmd.Name(), "config", cfgFile)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logger == nil {
		return nil
	}
	return logger.Close()
}

// loadConfig reads --config, then $MINIC_CONFIG and the default locations,
// and falls back to built-in defaults when no file exists
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

// newChecker creates a front end configured from the loaded settings
func newChecker() *frontend.Checker {
	return frontend.New(frontend.Options{
		Logger:         logger.Logger,
		MaxSourceBytes: appConfig.Frontend.MaxSourceBytes,
		MaxDepth:       appConfig.Frontend.MaxDepth,
		CacheSize:      max(appConfig.Frontend.CacheSize, 0),
	})
}

// newRenderer creates a report renderer for w. An empty format selects the
// configured default.
func newRenderer(w io.Writer, format string) (*report.Renderer, error) {
	if format == "" {
		format = appConfig.Output.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return report.New(w, report.Options{Format: f, Color: useColor(w)}), nil
}

// useColor applies output.color; "auto" enables color on terminals only
func useColor(w io.Writer) bool {
	switch appConfig.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// exitError carries the exit status of a failure that was already reported
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode maps an error returned by Execute to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var reported *exitError
	if errors.As(err, &reported) {
		return reported.code
	}
	if kind := diag.KindOf(err); kind.IsValid() {
		return kind.ExitCode()
	}
	return 1
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
