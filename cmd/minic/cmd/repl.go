package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/minic/internal/frontend"
	"github.com/msto63/minic/internal/tui/repl"
)

var replCmd = &cobra.Command{
	Use:     "repl [file]",
	Aliases: []string{"edit"},
	Short:   "Start the interactive editor",
	Long: `Starts an interactive editor. The program is checked again after
every change and the symbol table or the first error is shown below
the editor.

Keys:
  Ctrl+T      Toggle the token table
  Ctrl+L      Clear the buffer
  PgUp/PgDn   Scroll the results
  Esc/Ctrl+C  Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	checker := newChecker()

	cfg := repl.Config{
		Checker: checker,
		Color:   useColor(os.Stdout),
	}
	if len(args) == 1 {
		source, err := checker.ReadFile(args[0])
		if err != nil {
			return err
		}
		cfg.Source = source
		cfg.Name = frontend.DisplayName(args[0])
	}

	return repl.Run(cfg)
}
