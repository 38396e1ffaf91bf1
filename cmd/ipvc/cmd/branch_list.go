package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var branchList = &cobra.Command{
	Use:   "ls",
	Short: "List branches",
	Long:  `List the branches of this repository, marking the active one.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		names, err := repo.ListBranches(ctx)
		if err != nil {
			wrapFatalln("list branches", err)
			return
		}
		active, err := repo.ActiveBranch(ctx)
		if err != nil {
			wrapFatalln("resolve active branch", err)
			return
		}
		if tpl := displayTemplate(); tpl != nil {
			for _, name := range names {
				entry := struct {
					Name   string
					Active bool
				}{Name: name, Active: name == active}
				if err := tpl.Execute(os.Stdout, entry); err != nil {
					wrapFatalln("executing template", err)
					return
				}
				fmt.Println()
			}
			return
		}
		for _, name := range names {
			if name != active {
				fmt.Println(" ", name)
			} else {
				fmt.Println(color.YellowString("*"), name)
			}
		}
	},
}

func init() {
	addFormatFlag(branchList)
	branchCmd.AddCommand(branchList)
}
