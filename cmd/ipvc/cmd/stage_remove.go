package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var stageRemove = &cobra.Command{
	Use:   "remove [paths...]",
	Short: "Unstage changes",
	Long: `Unstage the changes under the given paths, or all staged changes when no
path is given, by restoring the stage to the head's content there. The
workspace keeps the changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		changes, err := repo.Unstage(ctx, absolutePaths(args)...)
		if err != nil {
			wrapFatalln("unstage changes", err)
			return
		}
		printChanges(changes)
	},
}

func init() {
	stageCmd.AddCommand(stageRemove)
}
