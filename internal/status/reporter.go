package status

import (
	"context"
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// LatestFetcher returns the newest upstream release.
type LatestFetcher interface {
	Latest(ctx context.Context) (*release.Release, error)
}

// Result is the outcome of a status check.
type Result struct {
	Latest    string
	Installed string
}

// UpToDate reports whether the installed version is exactly the latest tag.
// No semantic version ordering is applied.
func (r Result) UpToDate() bool {
	return r.Installed == r.Latest
}

// Verdict returns the one-line, human-readable comparison.
func (r Result) Verdict() string {
	if r.UpToDate() {
		return fmt.Sprintf("Frida is up to date (%s).", r.Latest)
	}
	return fmt.Sprintf("Frida is outdated: installed %s, latest %s.", r.Installed, r.Latest)
}

// Reporter compares the latest release with the installed version.
type Reporter struct {
	releases LatestFetcher
	query    VersionQuery
	logger   logging.Logger
}

// NewReporter creates a Reporter. A nil query runs "frida --version".
func NewReporter(releases LatestFetcher, query VersionQuery, logger logging.Logger) *Reporter {
	if query == nil {
		query = DefaultQuery()
	}
	return &Reporter{
		releases: releases,
		query:    query,
		logger:   logging.OrNop(logger),
	}
}

// Check fetches the latest release, then queries the installed version.
// Upstream failures are returned as-is (*release.UpstreamError), command
// failures as *ExternalCommandError.
func (r *Reporter) Check(ctx context.Context) (*Result, error) {
	latest, err := r.releases.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	r.logger.Debug("latest release", "version", latest.Version)

	installed, err := r.query.InstalledVersion(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("installed version", "version", installed)

	return &Result{Latest: latest.Version, Installed: installed}, nil
}

// Report runs Check and writes the verdict line to w.
func (r *Reporter) Report(ctx context.Context, w io.Writer) (*Result, error) {
	res, err := r.Check(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(w, res.Verdict()); err != nil {
		return nil, fmt.Errorf("write verdict: %w", err)
	}
	return res, nil
}
