package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stageStatus = &cobra.Command{
	Use:   "status",
	Short: "Show staged and unstaged changes",
	Long: `Show the changes staged for the next commit, then the workspace changes not
staged yet.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		staged, unstaged, mergePending, err := repo.StageStatus(ctx)
		if err != nil {
			wrapFatalln("compute status", err)
			return
		}
		if mergePending {
			color.Set(color.FgYellow)
			fmt.Println("NOTE: you are in the merge conflict state, the next commit will be the merge commit. To abort the merge, run `ipvc branch merge --abort`")
			color.Unset()
			fmt.Println()
		}
		if len(staged) == 0 {
			fmt.Println("No staged changes")
		} else {
			fmt.Println("Staged:")
			fmt.Println(staged.Render())
			fmt.Println(strings.Repeat("-", 80))
		}
		if len(unstaged) == 0 {
			fmt.Println("No unstaged changes")
		} else {
			fmt.Println("Unstaged:")
			fmt.Println(unstaged.Render())
		}
	},
}

func init() {
	stageCmd.AddCommand(stageStatus)
}
