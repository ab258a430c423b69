package platform

import (
	"fmt"
	"strings"
)

// fridaOSNames maps GOOS values to frida's asset naming.
var fridaOSNames = map[string]string{
	"linux":   "linux",
	"darwin":  "macos",
	"windows": "windows",
	"android": "android",
	"freebsd": "freebsd",
}

// fridaArchNames maps normalized architectures to frida's asset naming.
var fridaArchNames = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "x86",
	"arm":   "arm",
}

// normalizeArch converts GOARCH values (and their uname aliases) to
// normalized architecture names.
func normalizeArch(arch string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arch)) {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	case "386", "i386", "i686", "x86":
		return "386", nil
	case "arm", "armv7", "armv7l":
		return "arm", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", arch)
	}
}

// normalizeDistro converts distro IDs and versions to lowercase for consistency.
func normalizeDistro(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
