// Package commands provides the council CLI.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	modelFlag    string
	fileFlag     string
	markdownFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "council",
	Short: "Ask hosted models through the Hugging Face router",
	Long: `council sends chat-completion requests to an OpenAI-compatible inference
endpoint and prints the answers. HF_TOKEN and API_URL must be set in the
environment or in a .env file.

Examples:
  council ask                           Ask the default question
  council ask "What is Go?" -m model    Ask one model
  council convene "Explain entropy"     Ask every council member in turn
  council convene -f prompt.md          Read the question from a file
  cat prompt.md | council convene       Read the question from stdin
  council interactive                   Convene the council for each line typed
  council history                       List recent runs
  council serve                         Start the HTTP API`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "council %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model for single queries (default DEFAULT_MODEL)")
	rootCmd.PersistentFlags().BoolVar(&markdownFlag, "markdown", false, "Render answers as markdown (default RENDER_MARKDOWN)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(conveneCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
