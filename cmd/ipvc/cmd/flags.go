// Copyright © 2023 Crypto Coin World

package cmd

import (
	"text/template"

	"github.com/spf13/cobra"

	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs"
)

type flagsT struct {
	branch struct {
		FromCommit        string
		NoCheckout        bool
		WithoutTimestamps bool
		ShowHash          bool
		Browser           bool
		Abort             bool
	}
	diff struct {
		FilesOnly bool
	}
	config struct {
		Author string
	}
	root struct {
		store     string
		namespace string
		gateway   string
		logLevel  string
		format    string
		cpuProf   bool
	}
}

var ipvcFlags = flagsT{}

func addStoreFlag(cmd *cobra.Command) string {
	c := "store"
	cmd.PersistentFlags().StringVar(&ipvcFlags.root.store, c, "",
		"Directory of the local object store (default $HOME/.ipvc/store)")
	return c
}

func addNamespaceFlag(cmd *cobra.Command) string {
	c := "namespace"
	cmd.PersistentFlags().StringVar(&ipvcFlags.root.namespace, c, "",
		"Root of the version control layout inside the object store (default \""+model.DefaultNamespace+"\")")
	return c
}

func addGatewayFlag(cmd *cobra.Command) string {
	c := "gateway"
	cmd.PersistentFlags().StringVar(&ipvcFlags.root.gateway, c, "",
		"URL prefix for browser links to objects (default "+vcs.DefaultGateway+")")
	return c
}

func addLogLevelFlag(cmd *cobra.Command) string {
	c := "loglevel"
	cmd.PersistentFlags().StringVar(&ipvcFlags.root.logLevel, c, "",
		"The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug (default none)")
	return c
}

func addCPUProfFlag(cmd *cobra.Command) string {
	c := "cpuprof"
	cmd.PersistentFlags().BoolVar(&ipvcFlags.root.cpuProf, c, false,
		"Toggle runtime profiling")
	return c
}

func addFormatFlag(cmd *cobra.Command) string {
	c := "format"
	cmd.Flags().StringVar(&ipvcFlags.root.format, c, "",
		`Pretty-print output using a Go template. Use '{{ printf "%#v" . }}' to explore available fields`)
	return c
}

func addFromCommitFlag(cmd *cobra.Command) string {
	c := "from-commit"
	cmd.Flags().StringVarP(&ipvcFlags.branch.FromCommit, c, "f", "@"+model.TreeHead,
		"The ref the new branch starts from")
	return c
}

func addNoCheckoutFlag(cmd *cobra.Command) string {
	c := "no-checkout"
	cmd.Flags().BoolVar(&ipvcFlags.branch.NoCheckout, c, false,
		"Create the branch without checking it out")
	return c
}

func addWithoutTimestampsFlag(cmd *cobra.Command) string {
	c := "without-timestamps"
	cmd.Flags().BoolVar(&ipvcFlags.branch.WithoutTimestamps, c, false,
		"Do not restore file modification times from metadata")
	return c
}

func addShowHashFlag(cmd *cobra.Command) string {
	c := "hash"
	cmd.Flags().BoolVarP(&ipvcFlags.branch.ShowHash, c, "s", false,
		"Show the hash of each commit's file tree")
	return c
}

func addBrowserFlag(cmd *cobra.Command) string {
	c := "browser"
	cmd.Flags().BoolVarP(&ipvcFlags.branch.Browser, c, "b", false,
		"Print a gateway URL for the object instead of its content")
	return c
}

func addAbortFlag(cmd *cobra.Command) string {
	c := "abort"
	cmd.Flags().BoolVar(&ipvcFlags.branch.Abort, c, false,
		"Abort the merge in progress and restore the pre-merge state")
	return c
}

func addFilesOnlyFlag(cmd *cobra.Command) string {
	c := "files"
	cmd.Flags().BoolVarP(&ipvcFlags.diff.FilesOnly, c, "f", false,
		"Report changed files instead of content diffs")
	return c
}

func addAuthorFlag(cmd *cobra.Command) string {
	c := "author"
	cmd.Flags().StringVar(&ipvcFlags.config.Author, c, "",
		"The author recorded in new commits")
	return c
}

// displayTemplate parses the --format template, nil when the flag is
// unset
func displayTemplate() *template.Template {
	if ipvcFlags.root.format == "" {
		return nil
	}
	t, err := template.New("list line").Parse(ipvcFlags.root.format)
	if err != nil {
		wrapFatalln("invalid format", err)
		return nil
	}
	return t
}
