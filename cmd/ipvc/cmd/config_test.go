package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestConfigMarshal(t *testing.T) {
	c := CLIConfig{
		Store:     "/scratch/ipvc-store",
		Namespace: "/team",
		Gateway:   "http://localhost:8080",
		LogLevel:  "debug",
	}
	b, err := c.MarshalConfig()
	require.NoError(t, err)

	var back CLIConfig
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, c, back)
}

func TestConfigFileLocation(t *testing.T) {
	orig, had := os.LookupEnv(envConfigLocation)
	defer func() {
		if had {
			_ = os.Setenv(envConfigLocation, orig)
		} else {
			_ = os.Unsetenv(envConfigLocation)
		}
	}()

	require.NoError(t, os.Setenv(envConfigLocation, "/tmp/custom/ipvc.yaml"))
	assert.Equal(t, "/tmp/custom/ipvc.yaml", configFileLocation(false))
	assert.Equal(t, "/tmp/custom/ipvc.yaml", configFileLocation(true))

	require.NoError(t, os.Unsetenv(envConfigLocation))
	assert.Equal(t, "$HOME/.ipvc/ipvc.yaml", configFileLocation(false))
	assert.True(t, strings.HasSuffix(configFileLocation(true), filepath.Join(".ipvc", "ipvc.yaml")))
}

func TestSetRuntimeParams(t *testing.T) {
	c := CLIConfig{Store: "/from/config", Namespace: "/ns", Gateway: "http://gw", LogLevel: "info"}

	flags := flagsT{}
	c.setRuntimeParams(&flags)
	assert.Equal(t, "/from/config", flags.root.store)
	assert.Equal(t, "/ns", flags.root.namespace)
	assert.Equal(t, "http://gw", flags.root.gateway)
	assert.Equal(t, "info", flags.root.logLevel)

	// flags already set win over the config
	flags = flagsT{}
	flags.root.store = "/from/flag"
	c.setRuntimeParams(&flags)
	assert.Equal(t, "/from/flag", flags.root.store)
}

func TestVersionInfo(t *testing.T) {
	v := NewVersionInfo()
	assert.Equal(t, "dev", v.Version)
	assert.Contains(t, v.String(), "Version: dev")
	assert.Contains(t, v.GoVersion, "go")
}
