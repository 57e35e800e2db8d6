// version.go
package version

import (
	"fmt"
	"runtime"
)

// AppName holds the name of the application
var AppName = "go-graph-user-search"

// Version holds the current version of the application. It is overridden at build time
// with -ldflags "-X github.com/deploymenttheory/go-graph-user-search/version.Version=...".
var Version = "0.1.0"

// GetAppName returns the name of the application
func GetAppName() string {
	return AppName
}

// GetVersion returns the current version of the application
func GetVersion() string {
	return Version
}

// GetUserAgentHeader returns the User-Agent sent on generic-path requests.
func GetUserAgentHeader() string {
	return fmt.Sprintf("%s/%s", AppName, Version)
}

// GetVersionString returns the long form printed by the version command.
func GetVersionString() string {
	return fmt.Sprintf("%s %s (%s %s/%s)", AppName, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
