// Copyright © 2023 Crypto Coin World

package cmd

import (
	"github.com/spf13/cobra"
)

// branchCmd represents the branch related commands
var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Commands to manage branches",
	Long: `Commands to manage the branches of a repository.

Every branch carries its own workspace, stage and head, so uncommitted work
parks with its branch across checkouts.`,
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
