package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchMerge = &cobra.Command{
	Use:   "merge [branch]",
	Short: "Merge another branch into the active branch",
	Long: `Merge another branch into the active branch.

Computing the merged tree is not implemented yet. The bookkeeping around it
is: an in-progress merge parks the merged-in head next to the stage and the
next commit becomes the merge commit. --abort restores the pre-merge stage
and workspace and drops that state.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		if ipvcFlags.branch.Abort {
			if err := repo.AbortMerge(ctx); err != nil {
				wrapFatalln("abort merge", err)
				return
			}
			infoLogger.Println("Merge aborted")
			return
		}
		if len(args) == 0 {
			wrapFatalln("a branch to merge is required", nil)
			return
		}
		if err := repo.Merge(ctx, args[0]); err != nil {
			wrapFatalln("merge "+args[0], err)
			return
		}
	},
}

func init() {
	addAbortFlag(branchMerge)
	branchCmd.AddCommand(branchMerge)
}
