package version

import (
	"runtime/debug"
	"sync"
)

// Header carries Get() on every request and on the hub handshake.
const Header = "X-Client-Version"

const (
	versionDevel = "devel"
	shortCommit  = 7
)

// version is set via ldflags at build time.
var version = versionDevel

var (
	once   sync.Once
	commit string
	dirty  bool
)

func load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == versionDevel {
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = v
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > shortCommit {
				commit = commit[:shortCommit]
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
}

// Get returns the release version, or "devel" for local builds.
func Get() string {
	once.Do(load)
	return version
}

// Commit returns the short VCS revision the binary was built from, suffixed
// with "-dirty" for a modified tree. Empty when unknown.
func Commit() string {
	once.Do(load)
	if commit != "" && dirty {
		return commit + "-dirty"
	}
	return commit
}

// Long is Get() with the commit appended when one is known.
func Long() string {
	if c := Commit(); c != "" {
		return Get() + " (" + c + ")"
	}
	return Get()
}

func UserAgent() string {
	return "commish/" + Get()
}
