// Package version reports the CLI version using Go's runtime/debug
// build info.
package version

import "runtime/debug"

const modulePath = "github.com/nowhq/now-cli"

// Version returns the module version if available from build info.
// Returns "dev" for local development builds.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path == modulePath && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}
