package cmd

import (
	"context"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

var configView = &cobra.Command{
	Use:   "view",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: config file and flags merged, plus the
author recorded in the object namespace.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		rt, done := initRuntime(ctx)
		defer done()
		params, err := rt.Params(ctx)
		if err != nil {
			wrapFatalln("read namespace parameters", err)
			return
		}
		view := struct {
			CLIConfig `yaml:",inline"`
			Author    string `yaml:"author,omitempty"`
		}{
			CLIConfig: CLIConfig{
				Store:     storeLocation(),
				Namespace: ipvcFlags.root.namespace,
				Gateway:   ipvcFlags.root.gateway,
				LogLevel:  logLevel(),
			},
			Author: params.Author,
		}
		o, err := yaml.Marshal(view)
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}
		logStdOut("%s", string(o))
	},
}

func init() {
	configCmd.AddCommand(configView)
}
