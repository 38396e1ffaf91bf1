package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var repoMove = &cobra.Command{
	Use:   "mv [from] to",
	Short: "Move a repository to another directory",
	Long: `Move a repository to another directory.

With two arguments the repository at from moves to to; with one argument the
repository covering the current working directory moves. The local directory
is renamed and the stored state follows it.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rt, done := initRuntime(ctx)
		defer done()
		var from, to string
		if len(args) == 1 {
			from, to = workingPath(nil), absolutePath(args[0])
		} else {
			from, to = absolutePath(args[0]), absolutePath(args[1])
		}
		if err := rt.MoveRepo(ctx, from, to); err != nil {
			wrapFatalln("move repository", err)
			return
		}
	},
}

func init() {
	repoCmd.AddCommand(repoMove)
}
