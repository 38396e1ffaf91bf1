package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var stageDiff = &cobra.Command{
	Use:   "diff",
	Short: "Diff the stage against the head",
	Long:  `Render the staged changes as unified diffs of file content.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		out, err := repo.StageDiff(ctx)
		if err != nil {
			wrapFatalln("diff stage", err)
			return
		}
		if out != "" {
			fmt.Println(out)
		}
	},
}

func init() {
	stageCmd.AddCommand(stageDiff)
}
