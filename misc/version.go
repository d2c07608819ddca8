// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Values below are set by the linker (see Taskfile.yml), defaults are used for
// development builds.
var (
	appName = "papergen"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name without extension.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
