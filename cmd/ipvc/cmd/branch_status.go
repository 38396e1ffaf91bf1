package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var branchStatus = &cobra.Command{
	Use:   "status",
	Short: "Print the name of the active branch",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		active, err := repo.ActiveBranch(ctx)
		if err != nil {
			wrapFatalln("resolve active branch", err)
			return
		}
		fmt.Println(active)
	},
}

func init() {
	branchCmd.AddCommand(branchStatus)
}
