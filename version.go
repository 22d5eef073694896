/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package remoteagent

import "runtime"

// Version information set by build flags
var (
	// Version is the semantic version of the remote agent
	Version = "1.0.0"

	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"

	// BuildDate is the build date (set by build flags)
	BuildDate = "unknown"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// GetVersionInfo returns the version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// UserAgent is the application name reported to MongoDB.
func UserAgent() string {
	return "mongo-remoteagent/" + Version
}
