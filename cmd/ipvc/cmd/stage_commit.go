package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var stageCommit = &cobra.Command{
	Use:   "commit message",
	Short: "Commit the staged tree",
	Long: `Commit the staged tree to the head of the active branch and print the hash
of the new commit.

During a merge the commit becomes the merge commit, closing the merge even
when nothing further was staged.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		key, err := repo.Commit(ctx, args[0])
		if err != nil {
			wrapFatalln("commit", err)
			return
		}
		fmt.Println(key)
	},
}

func init() {
	stageCmd.AddCommand(stageCommit)
}
