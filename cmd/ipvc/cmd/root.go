// Copyright © 2023 Crypto Coin World

package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs"
	"github.com/crypto-coin-world/ipvc/pkg/zlog"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ipvc",
	Short: "Ipvc versions file trees over a content addressed store",
	Long: `Ipvc versions file trees over a content addressed store.

It provides a git like workflow: a repository covers a directory of the
local file system, changes are staged and committed per branch, and every
file tree and commit is addressable by its hash.

All bookkeeping lives in the object store, outside the covered directory,
so working copies stay clean and switching branches never loses
uncommitted work.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if ipvcFlags.root.cpuProf {
			f, err := os.Create("cpu.prof")
			if err != nil {
				log.Fatal(err)
			}
			_ = pprof.StartCPUProfile(f)
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if ipvcFlags.root.cpuProf {
			pprof.StopCPUProfile()
		}
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addStoreFlag(rootCmd)
	addNamespaceFlag(rootCmd)
	addGatewayFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addCPUProfFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("namespace", model.DefaultNamespace)
	viper.SetDefault("gateway", vcs.DefaultGateway)
	viper.SetDefault("loglevel", zlog.LogLevelNone)
	if os.Getenv(envConfigLocation) != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv(envConfigLocation))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.ipvc")
		viper.AddConfigPath("/etc/ipvc")
		viper.SetConfigName("ipvc")
	}

	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setRuntimeParams(&ipvcFlags)
}
