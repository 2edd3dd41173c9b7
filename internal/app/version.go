package app

import (
	"sync"

	pkgapp "github.com/ankibridge/ankibridge-service/pkg/app"
)

// Name the service name used in logs, headers and the config banner.
const Name = "ankibridge-service"

// Build metadata, stamped by the linker.
var (
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)

// VersionInfo returns the build metadata.
func VersionInfo() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

var (
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
)

// SetCheckVersion stores the latest release check result.
func SetCheckVersion(info pkgapp.CheckVersionInfo) {
	checkVersionMu.Lock()
	defer checkVersionMu.Unlock()
	checkVersion = info
}

// GetCheckVersion returns the latest release check result.
func GetCheckVersion() pkgapp.CheckVersionInfo {
	checkVersionMu.RLock()
	defer checkVersionMu.RUnlock()
	return checkVersion
}
