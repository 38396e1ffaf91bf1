package cmd

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Build information, set at link time
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes this build
type VersionInfo struct {
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty" yaml:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty" yaml:"gitState,omitempty"`
	GoVersion string `json:"goVersion,omitempty" yaml:"goVersion,omitempty"`
}

// NewVersionInfo resolves the version information for this build.
// Binaries built without link time metadata report a dev version.
func NewVersionInfo() VersionInfo {
	ver := VersionInfo{
		Version:   "dev",
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
		GoVersion: runtime.Version(),
	}
	if Version != "" {
		ver.Version = Version
		if ver.GitState == "" {
			ver.GitState = "clean"
		}
	}
	return ver
}

func (v VersionInfo) String() string {
	var b strings.Builder
	b.WriteString("Version: " + v.Version + "\n")
	b.WriteString("Build date: " + v.BuildDate + "\n")
	b.WriteString("Commit: " + v.GitCommit + "\n")
	b.WriteString("Working tree: " + v.GitState + "\n")
	b.WriteString("Go: " + v.GoVersion + "\n")
	return b.String()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints the version of ipvc",
	Long: `Prints the version of ipvc. It includes the following components:
	* Semver (output of git describe --tags)
	* Build Date (date at which the binary was built)
	* Git Commit (the git commit hash this binary was built from)
	* Git State (when dirty there were uncommitted changes during the build)
	* Go (the go runtime this binary was built with)
`,
	Run: func(cmd *cobra.Command, args []string) {
		logStdOut(NewVersionInfo().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
