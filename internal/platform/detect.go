package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// HostQuery returns the raw host facts detection is based on.
// It exists so tests can substitute the gopsutil call.
type HostQuery func(ctx context.Context) (*host.InfoStat, error)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	query HostQuery
}

// NewDetector creates a new platform detector backed by gopsutil.
func NewDetector() Detector {
	return &RealDetector{query: host.InfoWithContext}
}

// NewDetectorWithQuery creates a detector using a custom host query.
func NewDetectorWithQuery(query HostQuery) Detector {
	return &RealDetector{query: query}
}

// Detect performs platform detection and returns platform information.
//
// The OS name and kernel architecture come from gopsutil. If the host query
// fails, or leaves a field empty, runtime.GOOS and runtime.GOARCH are used
// instead. Unsupported values fail with an *UnsupportedError.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	osName, machine := runtime.GOOS, runtime.GOARCH

	var stat *host.InfoStat
	if d.query != nil {
		s, err := d.query(ctx)
		if err != nil {
			// Check if context was cancelled - this is a hard failure
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
		} else if s != nil {
			stat = s
			if s.OS != "" {
				osName = s.OS
			}
			if s.KernelArch != "" {
				machine = s.KernelArch
			}
		}
	}

	target, err := Resolve(osName, machine)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Target:  target,
		OSRaw:   osName,
		ArchRaw: machine,
	}

	// Distribution details are best effort and Linux only
	if target.OS == OSLinux && stat != nil {
		if p := normalizePlatform(stat.Platform); p != "" {
			info.Platform = p
			info.Family = mapFamily(stat.PlatformFamily)
			info.Version = normalizePlatform(stat.PlatformVersion)
		}
	}

	return info, nil
}
