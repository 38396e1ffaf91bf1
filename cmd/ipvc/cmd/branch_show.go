package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

var branchShow = &cobra.Command{
	Use:   "show [refpath]",
	Short: "Show the object a ref points to",
	Long: `Show the object a ref points to: content for files, entry names for
directories. The default ref is the head of the active branch.

With --browser, print a gateway URL for the object instead of its content.`,
	Example: `% ipvc branch show @head~/data/report.txt
% ipvc branch show @experiment
% ipvc branch show @stage --browser`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		refpath := "@" + model.TreeHead
		if len(args) > 0 {
			refpath = args[0]
		}
		out, err := repo.Show(ctx, refpath, ipvcFlags.branch.Browser)
		if err != nil {
			wrapFatalln("show "+refpath, err)
			return
		}
		fmt.Println(out)
	},
}

func init() {
	addBrowserFlag(branchShow)
	branchCmd.AddCommand(branchShow)
}
