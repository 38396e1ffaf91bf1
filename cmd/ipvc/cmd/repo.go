// Copyright © 2023 Crypto Coin World

package cmd

import (
	"github.com/spf13/cobra"
)

// repoCmd represents the repo related commands
var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Commands to manage repositories",
	Long: `Commands to manage repositories.

A repository covers one directory of the local file system. Its branches,
staged changes and commits all live in the object store, keyed by the
directory they cover; the covered directory itself holds nothing but the
working files.`,
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
