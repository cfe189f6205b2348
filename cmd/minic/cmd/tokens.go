package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/minic/internal/diag"
	"github.com/msto63/minic/internal/frontend"
)

var tokensOutput string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token list of a source file",
	Long: `Tokens runs only the lexer and prints every token with its kind,
lexeme and line. The input does not need to be a valid program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensOutput, "output", "o", "",
		"Output format: table, json or yaml (default from config)")
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	renderer, err := newRenderer(cmd.OutOrStdout(), tokensOutput)
	if err != nil {
		return err
	}
	defer renderer.Close()

	checker := newChecker()
	source, err := checker.ReadFile(path)
	if err != nil {
		return err
	}

	name := frontend.DisplayName(path)
	tokens, err := checker.Tokens(name, source)
	if d, ok := diag.As(err); ok {
		if err := renderer.Error(name, d); err != nil {
			return err
		}
		return &exitError{code: d.Kind.ExitCode()}
	}
	if err != nil {
		return err
	}

	return renderer.Tokens(name, tokens)
}
