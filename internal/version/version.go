// Package version carries the build version reported by the service
// and the CLI.
package version

// Version is stamped at release builds via -ldflags.
var Version = "1.2.0"
