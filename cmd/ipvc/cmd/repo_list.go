package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

var repoList = &cobra.Command{
	Use:   "ls",
	Short: "List repositories",
	Long:  `List every repository known to the object store, with the hash of its current state.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rt, done := initRuntime(ctx)
		defer done()
		repos, err := rt.ListRepos(ctx)
		if err != nil {
			wrapFatalln("list repositories", err)
			return
		}
		if tpl := displayTemplate(); tpl != nil {
			for _, repo := range repos {
				if err := tpl.Execute(os.Stdout, repo); err != nil {
					wrapFatalln("executing template", err)
					return
				}
				fmt.Println()
			}
			return
		}
		if len(repos) == 0 {
			return
		}
		infoLogger.Println("Found repositories at:")
		table := uitable.New()
		table.MaxColWidth = 120
		for _, repo := range repos {
			table.AddRow(model.ShortKey(repo.Key)+":", repo.Root)
		}
		fmt.Println(table)
	},
}

func init() {
	addFormatFlag(repoList)
	repoCmd.AddCommand(repoList)
}
