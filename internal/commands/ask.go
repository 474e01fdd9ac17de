package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hf-council/internal/service"
)

const defaultAskPrompt = "What is the capital of France?"

// errModelFailed is returned after the error banner has been printed.
var errModelFailed = errors.New("model did not answer")

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Send one prompt to one model",
	Long: `Send one prompt to a single model and print its reply.

The model defaults to DEFAULT_MODEL and the prompt to a fixed question.
A failed call prints the error banner and exits with status 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := resolvePrompt(args, fileFlag, os.Stdin, defaultAskPrompt)
		if err != nil {
			return err
		}
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer func() {
			_ = deps.Close()
		}()
		return runAsk(cmd.Context(), deps, prompt, modelFlag)
	},
}

func init() {
	askCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
}

func runAsk(ctx context.Context, deps *Dependencies, prompt, model string) error {
	session, err := deps.Service.Ask(ctx, service.AskRequest{Prompt: prompt, Model: model})
	if err != nil {
		return err
	}
	if len(session.Verdicts) == 0 {
		return errModelFailed
	}

	v := session.Verdicts[0]
	deps.Printer().Answer(v)
	if v.Failed() {
		return fmt.Errorf("%w: %s", errModelFailed, v.Model)
	}
	return nil
}
