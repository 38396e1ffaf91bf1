// Copyright © 2023 Crypto Coin World

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

// stageCmd represents the stage related commands
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Commands to manage the stage",
	Long: `Commands to manage the stage of the active branch.

The stage sits between the workspace, which mirrors the covered directory,
and the head, which holds the last commit. Changes move workspace to stage
with add, stage to head with commit.`,
}

func init() {
	rootCmd.AddCommand(stageCmd)
}

func printChanges(changes model.ChangeSet) {
	if len(changes) == 0 {
		infoLogger.Println("No changes")
		return
	}
	infoLogger.Println("Changes:")
	infoLogger.Println(changes.Render())
}
