package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var stageAdd = &cobra.Command{
	Use:   "add [paths...]",
	Short: "Stage workspace changes",
	Long: `Stage the workspace changes under the given paths, or under the whole
repository when no path is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		changes, err := repo.Add(ctx, absolutePaths(args)...)
		if err != nil {
			wrapFatalln("stage changes", err)
			return
		}
		printChanges(changes)
	},
}

func init() {
	stageCmd.AddCommand(stageAdd)
}
