package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the semantic version number
	Version = "0.3.0"

	// GitCommit is the git commit hash (injected at build time)
	GitCommit = "unknown"

	// GitBranch is the git branch (injected at build time)
	GitBranch = "unknown"

	// BuildDate is the build date (injected at build time)
	BuildDate = "unknown"

	// BuildUser is the user who built the binary (injected at build time)
	BuildUser = "unknown"

	// BuildMethod names the build tooling (injected at build time)
	BuildMethod = ""
)

// Info contains version information
type Info struct {
	Version     string `json:"version"`
	GitCommit   string `json:"git_commit"`
	GitBranch   string `json:"git_branch"`
	BuildDate   string `json:"build_date"`
	BuildUser   string `json:"build_user"`
	BuildMethod string `json:"build_method"`
	Modified    bool   `json:"modified"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
}

// GetInfo returns version information. Values not injected with -ldflags
// are taken from the VCS stamp the go command embeds in the binary.
func GetInfo() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(bi)
}

func resolve(bi *debug.BuildInfo) Info {
	info := Info{
		Version:     Version,
		GitCommit:   GitCommit,
		GitBranch:   GitBranch,
		BuildDate:   BuildDate,
		BuildUser:   BuildUser,
		BuildMethod: BuildMethod,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if bi == nil {
		if info.BuildMethod == "" {
			info.BuildMethod = "unknown"
		}
		return info
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	if info.BuildMethod == "" {
		switch {
		case bi.Main.Version != "" && bi.Main.Version != "(devel)":
			info.BuildMethod = "go-install"
		case info.GitCommit != "unknown":
			info.BuildMethod = "go-build"
		default:
			info.BuildMethod = "unknown"
		}
	}
	return info
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return GetInfo().short()
}

func (i Info) short() string {
	if i.GitCommit == "unknown" {
		return fmt.Sprintf("mailbrief %s", i.Version)
	}

	commit := i.GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("mailbrief %s (%s)", i.Version, commit)
}

// GetDetailedVersionString returns a detailed version string for --version output
func GetDetailedVersionString() string {
	info := GetInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.short())
	fmt.Fprintf(&b, "Git commit: %s\n", info.GitCommit)
	fmt.Fprintf(&b, "Git branch: %s\n", info.GitBranch)
	fmt.Fprintf(&b, "Build date: %s\n", info.BuildDate)
	fmt.Fprintf(&b, "Built by: %s\n", info.BuildUser)
	fmt.Fprintf(&b, "Build method: %s\n", info.BuildMethod)
	fmt.Fprintf(&b, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(&b, "Platform: %s", info.Platform)
	return b.String()
}
