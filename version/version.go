// Package version describes the running build, for logs and response headers.
package version

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
)

var (
	// Path and version of the main module of the running binary.
	MainPath    = "unknown"
	MainVersion = "unknown"
	// This module's version. "(devel)" when it's also the main module.
	ModuleVersion = "unknown"
	// Sent in the Server header by the web service.
	DefaultServerHeader string
)

func init() {
	const (
		longNamespace   = "anacrolix"
		longPackageName = "torrent-identify"
	)
	type Newtype struct{}
	thisPkg := reflect.TypeOf(Newtype{}).PkgPath()
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		MainPath = buildInfo.Main.Path
		MainVersion = buildInfo.Main.Version
		thisModule := ""
		for _, dep := range append(buildInfo.Deps, &buildInfo.Main) {
			if dep.Path != "" && strings.HasPrefix(thisPkg, dep.Path) && len(dep.Path) >= len(thisModule) {
				thisModule = dep.Path
				ModuleVersion = dep.Version
			}
		}
	}
	// Test binaries can have empty module versions.
	if ModuleVersion == "" {
		ModuleVersion = "unknown"
	}
	DefaultServerHeader = fmt.Sprintf("%v-%v/%v", longNamespace, longPackageName, ModuleVersion)
}

// A one line description of the build.
func String() string {
	return fmt.Sprintf("%v %v (torrent-identify %v)", MainPath, MainVersion, ModuleVersion)
}
