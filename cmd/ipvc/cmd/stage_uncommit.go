package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var stageUncommit = &cobra.Command{
	Use:   "uncommit",
	Short: "Undo the last commit, keeping its changes staged",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		if err := repo.Uncommit(ctx); err != nil {
			wrapFatalln("uncommit", err)
			return
		}
	},
}

func init() {
	stageCmd.AddCommand(stageUncommit)
}
