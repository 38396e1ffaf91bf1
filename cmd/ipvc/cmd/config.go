package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// envConfigLocation overrides where the config file is looked up and
// generated
const envConfigLocation = "IPVC_CONFIG"

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Store     string `json:"store" yaml:"store"`         // Directory of the local object store
	Namespace string `json:"namespace" yaml:"namespace"` // Root of the layout inside the store
	Gateway   string `json:"gateway" yaml:"gateway"`     // URL prefix for browser links
	LogLevel  string `json:"loglevel" yaml:"loglevel"`   // Default logging level
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setRuntimeParams fills flags left unset from the configuration
func (c *CLIConfig) setRuntimeParams(flags *flagsT) {
	if flags.root.store == "" {
		flags.root.store = c.Store
	}
	if flags.root.namespace == "" {
		flags.root.namespace = c.Namespace
	}
	if flags.root.gateway == "" {
		flags.root.gateway = c.Gateway
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
}

// MarshalConfig serializes the configuration the way the config file
// holds it
func (c *CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configFileLocation is where the config file is generated. With
// expand, $HOME is resolved against the current user.
func configFileLocation(expand bool) string {
	if file := os.Getenv(envConfigLocation); file != "" {
		return file
	}
	if !expand {
		return "$HOME/.ipvc/ipvc.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ipvc", "ipvc.yaml")
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the ipvc config",
	Long: `Commands to manage the ipvc CLI config.

Configuration for ipvc is the common set of flags that are needed for most
commands and do not change across runs, analogous to "git config ...".

The author recorded in commits is not part of the config file: it is kept in
the object namespace itself, next to the repositories it applies to.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
