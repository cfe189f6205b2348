package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/frontend"
	"github.com/msto63/minic/internal/report"
	"github.com/msto63/minic/internal/watch"
)

var (
	checkOutput string
	checkWatch  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file|-]...",
	Short: "Check source files for lexical, syntax and declaration errors",
	Long: `Check lexes and parses each source file. A valid program prints

  Parsing completed successfully! No Syntax Error

followed by its symbol table. Otherwise the first error is printed and
the command exits with a status that identifies the error kind:

` + exitCodeHelp() + `
Without arguments, or with "-", the program is read from standard input.`,
	Example: `  minic check main.mc
  minic check -o json a.mc b.mc
  minic check --watch main.mc`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "",
		"Output format: table, json or yaml (default from config)")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false,
		"Check again whenever a file changes")
}

// exitCodeHelp lists the exit status of every diagnostic kind
func exitCodeHelp() string {
	var b strings.Builder
	for _, kind := range diag.Kinds() {
		fmt.Fprintf(&b, "  %d  %s\n", kind.ExitCode(), kind)
	}
	return b.String()
}

func runCheck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	if checkWatch && slices.Contains(paths, "-") {
		return errors.New("--watch needs file arguments, not standard input")
	}

	renderer, err := newRenderer(cmd.OutOrStdout(), checkOutput)
	if err != nil {
		return err
	}
	defer renderer.Close()

	checker := newChecker()
	headers := len(paths) > 1 && renderer.Format() == report.FormatTable

	code := 0
	for _, path := range paths {
		if c := checkFile(cmd, checker, renderer, path, headers); code == 0 {
			code = c
		}
	}

	if checkWatch {
		return watchFiles(cmd, checker, renderer, paths, headers)
	}
	if code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// checkFile checks one file, reports the outcome and returns its exit status
func checkFile(cmd *cobra.Command, checker *frontend.Checker, renderer *report.Renderer, path string, header bool) int {
	out := cmd.OutOrStdout()
	if header {
		fmt.Fprintf(out, "==> %s <==\n", frontend.DisplayName(path))
	}

	result, err := checker.CheckFile(path)
	if result == nil {
		printError(err)
		return 1
	}
	if err := renderer.Result(result); err != nil {
		printError(err)
		return 1
	}
	if header {
		io.WriteString(out, "\n")
	}

	if result.Diagnostic != nil {
		return result.Diagnostic.Kind.ExitCode()
	}
	return 0
}

// watchFiles re-checks files on change until interrupted
func watchFiles(cmd *cobra.Command, checker *frontend.Checker, renderer *report.Renderer, paths []string, headers bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(paths, watch.Options{
		Logger:   logger.Logger,
		Debounce: appConfig.Watch.Debounce.Duration,
		OnChange: func(path string) {
			checkFile(cmd, checker, renderer, path, headers)
		},
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes, press Ctrl+C to stop")
	w.Wait()

	hits, misses, size := checker.CacheStats()
	logger.Info("Stopped watching", "cache_hits", hits, "cache_misses", misses, "cache_entries", size)

	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}
