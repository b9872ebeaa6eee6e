package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/ideaboard/internal/content"
)

// version is set via -ldflags at build time.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version and the content version it reads",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ideaboard %s\n", buildVersion())
		fmt.Printf("content   %s %s\n", content.Library, content.CurrentVersion)
	},
}

// buildVersion prefers the linker-set version, then the module version
// recorded by go install.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
