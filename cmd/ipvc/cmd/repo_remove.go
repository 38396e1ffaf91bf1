package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var repoRemove = &cobra.Command{
	Use:   "rm [path]",
	Short: "Remove a repository from the store",
	Long: `Remove the repository covering path, or the current working directory, from
the object store. Local files are left alone.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rt, done := initRuntime(ctx)
		defer done()
		key, err := rt.RemoveRepo(ctx, workingPath(args))
		if err != nil {
			wrapFatalln("remove repository", err)
			return
		}
		infoLogger.Printf("Repository with hash %s removed", key)
	},
}

func init() {
	repoCmd.AddCommand(repoRemove)
}
