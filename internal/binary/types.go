package binary

import (
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// Status is the outcome of processing one asset.
type Status int

const (
	// StatusDownloaded indicates the asset was fetched and written to the cache
	StatusDownloaded Status = iota
	// StatusCached indicates the asset was already present and skipped
	StatusCached
	// StatusFailed indicates the download failed; the asset is absent from the cache
	StatusFailed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusCached:
		return "cached"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one asset during a fetch
type Outcome struct {
	Asset    release.Asset
	Status   Status
	Path     string // Destination path (empty when the asset failed before resolving it)
	Err      error  // Set only for StatusFailed
	Duration time.Duration
}

// Report summarizes a fetch operation
type Report struct {
	Version  string
	Dir      string
	Outcomes []Outcome // In the same order as the filtered assets
}

// Count returns the number of outcomes with the given status
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the outcomes of assets that could not be downloaded
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// FetchOptions configures a fetch
type FetchOptions struct {
	// Version is the release tag to fetch; empty means the latest release
	Version string
}

// DownloadError reports a failed download of a single asset.
type DownloadError struct {
	Asset string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.Asset, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// FilesystemError reports a failure to prepare the cache directories.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
