package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hf-council/internal/service"
)

const defaultCouncilPrompt = "Explain the concept of 'entropy' to a 5-year-old."

var membersFlag []string

var conveneCmd = &cobra.Command{
	Use:   "convene [prompt]",
	Short: "Ask every council member the same prompt",
	Long: `Ask each council member the same prompt, one after another, and print
every answer. A member that fails gets an error banner and the council
moves on to the next member.

Members default to COUNCIL_MEMBERS or the built-in council.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := resolvePrompt(args, fileFlag, os.Stdin, defaultCouncilPrompt)
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
		return runConvene(cmd.Context(), deps, prompt, membersFlag)
	},
}

func init() {
	conveneCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	conveneCmd.Flags().StringSliceVar(&membersFlag, "members", nil, "Comma-separated council override")
}

func runConvene(ctx context.Context, deps *Dependencies, prompt string, members []string) error {
	session, err := deps.Service.Convene(ctx, service.ConveneRequest{
		Prompt:  prompt,
		Members: members,
	}, deps.Printer())
	if err != nil {
		return err
	}
	if session.RunID != "" {
		fmt.Fprintf(deps.Out, "Saved as run %s\n", session.RunID)
	}
	return nil
}
