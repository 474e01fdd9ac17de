package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recent runs or show one run",
	Long: `Without an argument, list the most recent runs. With a run id, print that
run the way it was printed when it happened.

History is stored in DB_PATH; an empty DB_PATH disables it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies()
		if err != nil {
			return err
		}
		defer func() {
			_ = deps.Close()
		}()

		if len(args) == 1 {
			return runHistoryShow(cmd.Context(), deps, args[0])
		}
		return runHistoryList(cmd.Context(), deps, historyLimitFlag)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of runs to list")
}

func runHistoryList(ctx context.Context, deps *Dependencies, limit int) error {
	sessions, err := deps.Service.History(ctx, limit)
	if err != nil {
		return err
	}
	deps.Printer().History(sessions)
	return nil
}

func runHistoryShow(ctx context.Context, deps *Dependencies, id string) error {
	session, err := deps.Service.Run(ctx, id)
	if err != nil {
		return err
	}
	deps.Printer().Session(session)
	return nil
}
