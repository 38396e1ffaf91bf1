package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/vcs"
)

var branchHistory = &cobra.Command{
	Use:   "history",
	Short: "Show the commit history of the active branch",
	Long: `Show the commit history of the active branch, most recent first.

Only first parents are followed: a merged-in branch contributes its merge
commit to the history, not its own commits.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, done := initRepo(ctx)
		defer done()
		commits, err := repo.History(ctx)
		if err != nil {
			wrapFatalln("walk history", err)
			return
		}
		tpl := displayTemplate()
		for _, c := range commits {
			if tpl != nil {
				if err := tpl.Execute(os.Stdout, newCommitView(c)); err != nil {
					wrapFatalln("executing template", err)
					return
				}
				fmt.Println()
				continue
			}
			fmt.Print("* ")
			if ipvcFlags.branch.ShowHash {
				color.Set(color.FgMagenta)
				fmt.Printf("%s ", c.FilesKey)
				color.Unset()
			}
			color.Set(color.FgYellow)
			fmt.Print(c.Meta.Timestamp.Format(time.RFC3339))
			color.Unset()
			fmt.Printf(" %-30.30s   %s\n", c.Meta.Author, c.Meta.Message)
		}
	},
}

// commitView flattens a history entry for --format templates
type commitView struct {
	Commit    string
	Files     string
	Message   string
	Author    string
	Timestamp time.Time
	IsMerge   bool
	IsReplay  bool
}

func newCommitView(c vcs.CommitInfo) commitView {
	return commitView{
		Commit:    c.Key.String(),
		Files:     c.FilesKey.String(),
		Message:   c.Meta.Message,
		Author:    c.Meta.Author,
		Timestamp: c.Meta.Timestamp,
		IsMerge:   c.Meta.IsMerge,
		IsReplay:  c.Meta.IsReplay,
	}
}

func init() {
	addShowHashFlag(branchHistory)
	addFormatFlag(branchHistory)
	branchCmd.AddCommand(branchHistory)
}
