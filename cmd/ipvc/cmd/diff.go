package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

var diffCmd = &cobra.Command{
	Use:   "diff [to [from]]",
	Short: "Diff two refs",
	Long: `Diff two refs, by default the workspace against the stage.

The report reads as what happened going from the second ref to the first.
File content is compared unless --files asks for changed files only.`,
	Example: `% ipvc diff
% ipvc diff @head @head~ --files
% ipvc diff @experiment/data @head/data`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		toRef := "@" + model.TreeWorkspace
		fromRef := ""
		if len(args) > 0 {
			toRef = args[0]
		}
		if len(args) > 1 {
			fromRef = args[1]
		}
		if ipvcFlags.diff.FilesOnly {
			changes, err := repo.DiffRefs(ctx, toRef, fromRef)
			if err != nil {
				wrapFatalln("diff", err)
				return
			}
			if len(changes) > 0 {
				fmt.Println(changes.Render())
			}
			return
		}
		out, err := repo.DiffContent(ctx, toRef, fromRef)
		if err != nil {
			wrapFatalln("diff", err)
			return
		}
		if out != "" {
			fmt.Println(out)
		}
	},
}

func init() {
	addFilesOnlyFlag(diffCmd)
	rootCmd.AddCommand(diffCmd)
}
