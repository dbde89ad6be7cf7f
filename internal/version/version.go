// SPDX-License-Identifier: MIT

// Package version carries build metadata stamped at link time.
package version

var (
	// Version is the sportfeed release. The build injects it via
	// -ldflags "-X github.com/ManuGH/sportfeed/internal/version.Version=...".
	Version = "v1.2.0"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
