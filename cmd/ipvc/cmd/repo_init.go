package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

var repoInit = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a repository",
	Long: `Initialize a repository covering path, or the current working directory.

The repository starts on a ` + model.DefaultBranch + ` branch whose workspace picks up the
files already present under its root. Initialization fails when another
repository already covers the directory, or sits above or below it.`,
	Example: `% ipvc repo init ~/projects/dataset
Successfully created repository`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rt, done := initRuntime(ctx)
		defer done()
		if _, err := rt.InitRepo(ctx, workingPath(args)); err != nil {
			wrapFatalln("initialize repository", err)
			return
		}
		infoLogger.Println("Successfully created repository")
	},
}

func init() {
	repoCmd.AddCommand(repoInit)
}
