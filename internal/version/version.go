// Package version reports the module's version string.
package version

const version = "0.1.0"

// Version returns the engine core's version string.
func Version() string {
	return version
}
