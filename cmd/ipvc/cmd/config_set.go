package cmd

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configSet = &cobra.Command{
	Aliases: []string{"create"},
	Use:     "set",
	Short:   "Create or update the local config file",
	Long: `Creates the local config file, or rewrites it, to hold the flags that do not
change across runs, like the store location or the namespace.

By default, this configuration file is placed in ` + configFileLocation(false) + `.

Use the ` + envConfigLocation + ` environment variable to change this target.

--author travels differently: the author is recorded in the object namespace,
next to the repositories it applies to, so every working copy sharing the
store commits under the same name.`,
	Example: `# Record the author stamped on new commits
% ipvc config set --author "Ada Lovelace"

# Keep the object store on a scratch disk
% ipvc config set --store /scratch/ipvc-store

# Generate config in some non-default location
% ` + envConfigLocation + `=~/.config/ipvc/config.yaml ipvc config set --store /scratch/ipvc-store`,
	Run: func(cmd *cobra.Command, args []string) {
		localConfig := CLIConfig{
			Store:     ipvcFlags.root.store,
			Namespace: ipvcFlags.root.namespace,
			Gateway:   ipvcFlags.root.gateway,
			LogLevel:  ipvcFlags.root.logLevel,
		}

		file := configFileLocation(true)
		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}
		o, err := localConfig.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}
		err = os.MkdirAll(filepath.Dir(file), 0777)
		if err != nil && !os.IsExist(err) {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}
		err = ioutil.WriteFile(file, o, 0600)
		if err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}
		infoLogger.Printf("config file created in %s", file)

		if ipvcFlags.config.Author != "" {
			ctx := context.Background()
			rt, done := initRuntime(ctx)
			defer done()
			if err := rt.SetAuthor(ctx, ipvcFlags.config.Author); err != nil {
				wrapFatalln("record author", err)
				return
			}
		}
	},
}

func init() {
	addAuthorFlag(configSet)
	configCmd.AddCommand(configSet)
}
