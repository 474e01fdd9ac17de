package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const interactivePrompt = "council> "

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Convene the council for each question typed",
	Long: `Read questions at a prompt and convene the council for each one.

  /ask <question>   ask the default model (or --model) instead
  exit, quit        leave; Ctrl-D and Ctrl-C at the prompt also leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer func() {
			_ = deps.Close()
		}()

		rl := liner.NewLiner()
		defer rl.Close()
		rl.SetCtrlCAborts(true)

		return runInteractive(cmd.Context(), deps, rl)
	},
}

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runInteractive(ctx context.Context, deps *Dependencies, rd lineReader) error {
	fmt.Fprintf(deps.Out, "council interactive (%d members). Type exit to leave.\n", len(deps.Service.Members()))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rd.Prompt(interactivePrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(deps.Out, "\nExiting.")
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "":
			continue
		case input == "exit" || input == "quit":
			return nil
		}
		rd.AppendHistory(input)

		if q, ok := strings.CutPrefix(input, "/ask "); ok {
			err = runAsk(ctx, deps, strings.TrimSpace(q), modelFlag)
		} else {
			err = runConvene(ctx, deps, input, membersFlag)
		}
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(deps.Out, "Error: %v\n", err)
		}
	}
}
