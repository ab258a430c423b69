package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// It uses runtime.GOOS and runtime.GOARCH for OS and architecture,
// and gopsutil for Linux distribution details.
//
// If gopsutil fails, the distro fields stay empty and detection still
// succeeds, unless ctx was cancelled.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	// Architectures frida does not ship for keep their GOARCH name and
	// produce no host asset.
	info.Arch = runtime.GOARCH
	if arch, err := normalizeArch(runtime.GOARCH); err == nil {
		info.Arch = arch
	}

	if runtime.GOOS == "linux" {
		distro, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		info.Distro = normalizeDistro(distro)
		if info.Distro != "" {
			info.DistroVersion = normalizeDistro(version)
		}
	}

	return info, nil
}

// StaticDetector returns a fixed Info. Useful when the platform is already known.
type StaticDetector struct {
	Info *Info
}

// Detect returns the configured Info.
func (s StaticDetector) Detect(ctx context.Context) (*Info, error) {
	if s.Info == nil {
		return nil, fmt.Errorf("no platform info configured")
	}
	return s.Info, nil
}
