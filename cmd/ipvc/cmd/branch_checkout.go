package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var branchCheckout = &cobra.Command{
	Use:   "checkout name",
	Short: "Check out a branch",
	Long: `Check out a branch: the covered directory is rewritten to the branch's
workspace, restoring file modification times from metadata unless disabled.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		if err := repo.Checkout(ctx, args[0], !ipvcFlags.branch.WithoutTimestamps); err != nil {
			wrapFatalln("checkout "+args[0], err)
			return
		}
	},
}

func init() {
	addWithoutTimestampsFlag(branchCheckout)
	branchCmd.AddCommand(branchCheckout)
}
