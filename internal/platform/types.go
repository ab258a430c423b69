// Package platform detects the host OS and architecture and exposes them to
// Lua configuration files, including the names frida uses for them in
// release asset file names (e.g. "linux-x86_64").
//
// Linux distribution details come from gopsutil; detection failures fall
// back to OS and architecture only.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS            string // "linux", "darwin", "windows"
	Arch          string // normalized GOARCH: "amd64", "arm64", "386", "arm"
	ArchRaw       string // original GOARCH
	Distro        string // distro ID (Linux only, e.g. "ubuntu")
	DistroVersion string // distro version (Linux only, e.g. "22.04")
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// FridaOS returns the OS name used in frida asset names, or "" if frida
// publishes no server for this OS.
func (i *Info) FridaOS() string {
	return fridaOSNames[i.OS]
}

// FridaArch returns the architecture name used in frida asset names.
func (i *Info) FridaArch() string {
	return fridaArchNames[i.Arch]
}

// HostAsset returns the "<os>-<arch>" fragment of this host's frida-server
// asset name, e.g. "linux-x86_64". Empty when either part is unknown.
func (i *Info) HostAsset() string {
	osName, arch := i.FridaOS(), i.FridaArch()
	if osName == "" || arch == "" {
		return ""
	}
	return osName + "-" + arch
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
