// Package version provides build information for the nemo emulator
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

var (
	// These will be set at build time via -ldflags
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// BuildInfo contains detailed build information
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	Tags      string `json:"tags"`
}

// GetBuildInfo returns detailed build information
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if GitCommit == "unknown" {
					info.GitCommit = setting.Value
				}
			case "vcs.time":
				if BuildTime == "unknown" {
					info.BuildTime = setting.Value
				}
			case "-tags":
				info.Tags = setting.Value
			}
		}
	}
	return info
}

// GetVersion returns a short version string
func GetVersion() string {
	info := GetBuildInfo()
	if Version == "dev" && len(info.GitCommit) >= 7 && info.GitCommit != "unknown" {
		return "dev-" + info.GitCommit[:7]
	}
	return Version
}

// Fprint writes formatted build information to w.
func Fprint(w io.Writer) {
	info := GetBuildInfo()
	fmt.Fprintf(w, "nemo %s\n", GetVersion())
	fmt.Fprintf(w, "Git Commit:  %s\n", info.GitCommit)
	fmt.Fprintf(w, "Build Time:  %s\n", info.BuildTime)
	fmt.Fprintf(w, "Go Version:  %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform:    %s/%s\n", info.Platform, info.Arch)
	if info.Tags != "" {
		fmt.Fprintf(w, "Build Tags:  %s\n", info.Tags)
	}
}
