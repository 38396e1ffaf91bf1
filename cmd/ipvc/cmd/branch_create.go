package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchCreate = &cobra.Command{
	Use:   "create name",
	Short: "Create a branch",
	Long: `Create a branch from a ref and check it out.

By default the branch starts at the tip of the active branch and carries its
uncommitted stage and workspace over. Branching from any other commit takes
only that commit's file tree.`,
	Example: `% ipvc branch create experiment
% ipvc branch create hotfix --from-commit @head~~
% ipvc branch create experiment --no-checkout`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		err := repo.CreateBranch(ctx, args[0], ipvcFlags.branch.FromCommit, ipvcFlags.branch.NoCheckout)
		if err != nil {
			wrapFatalln("create branch "+args[0], err)
			return
		}
	},
}

func init() {
	addFromCommitFlag(branchCreate)
	addNoCheckoutFlag(branchCreate)
	branchCmd.AddCommand(branchCreate)
}
