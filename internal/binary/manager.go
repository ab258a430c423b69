package binary

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// ReleaseResolver resolves a release by tag, or the latest release for an empty tag.
// *release.Client implements it.
type ReleaseResolver interface {
	Resolve(ctx context.Context, version string) (*release.Release, error)
}

// Manager orchestrates release resolution, asset filtering and downloads
type Manager struct {
	releases   ReleaseResolver
	filter     release.Filter
	workers    int
	cache      *Cache
	downloader *Downloader
	logger     logging.Logger
}

// Config holds configuration for the manager
type Config struct {
	// Root is the cache root directory (default: ~/.fridamanager)
	Root string
	// Releases resolves release metadata
	Releases ReleaseResolver
	// Filter selects the assets to download (default: frida-server-* assets)
	Filter release.Filter
	// Workers caps concurrent downloads; 0 or less means one goroutine per asset
	Workers int
	// UserAgent is sent with asset downloads (default: DefaultUserAgent)
	UserAgent string
	// HTTPClient overrides the client used for asset downloads
	HTTPClient *http.Client
	// FS overrides the filesystem (default: OS filesystem)
	FS afero.Fs
	// Logger receives progress events (default: no-op)
	Logger logging.Logger
}

// NewManager creates a new manager
func NewManager(config Config) (*Manager, error) {
	if config.Root == "" {
		return nil, fmt.Errorf("Root is required")
	}

	if config.Releases == nil {
		return nil, fmt.Errorf("Releases is required")
	}

	fs := config.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	filter := config.Filter
	if filter.Prefix == "" {
		filter.Prefix = release.ServerAssetPrefix
	}

	logger := logging.OrNop(config.Logger)

	downloader := NewDownloader(fs, config.UserAgent)
	downloader.logger = logger
	if config.HTTPClient != nil {
		downloader.client = config.HTTPClient
	}

	return &Manager{
		releases:   config.Releases,
		filter:     filter,
		workers:    config.Workers,
		cache:      NewCacheWithFS(fs, config.Root),
		downloader: downloader,
		logger:     logger,
	}, nil
}

// Cache returns the manager's cache
func (m *Manager) Cache() *Cache {
	return m.cache
}

// EnsureRoot creates the cache root directory
func (m *Manager) EnsureRoot() error {
	return m.cache.EnsureRoot()
}

// Clean empties the cache
func (m *Manager) Clean() error {
	m.logger.Info("cleaning cache", "root", m.cache.Root())
	return m.cache.Clean()
}

// Fetch resolves the requested release and downloads every selected asset
// that is not already cached.
//
// Resolution and version-directory errors are fatal. Individual download
// failures are recorded in the report and never abort sibling downloads, so
// the returned error is nil even when some assets failed.
func (m *Manager) Fetch(ctx context.Context, opts FetchOptions) (*Report, error) {
	rel, err := m.releases.Resolve(ctx, opts.Version)
	if err != nil {
		return nil, fmt.Errorf("resolve release: %w", err)
	}
	m.logger.Info("resolved release", "version", rel.Version)

	assets := m.dedupe(m.filter.Apply(rel.Assets))
	m.logger.Info("found frida-server binaries", "count", len(assets))

	dir, err := m.cache.VersionDir(rel.Version)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Version:  rel.Version,
		Dir:      dir,
		Outcomes: make([]Outcome, len(assets)),
	}

	// Tasks never return errors, so one failure cannot cancel the others
	var g errgroup.Group
	if m.workers > 0 {
		g.SetLimit(m.workers)
	}
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			report.Outcomes[i] = m.process(ctx, asset, dir)
			return nil
		})
	}
	_ = g.Wait()

	m.logger.Info("fetch complete",
		"version", rel.Version,
		"downloaded", report.Count(StatusDownloaded),
		"cached", report.Count(StatusCached),
		"failed", report.Count(StatusFailed))

	return report, nil
}

// dedupe drops assets whose cache file name is already claimed by an earlier
// asset, e.g. "frida-server-x" and "frida-server-x.xz". Order is preserved.
func (m *Manager) dedupe(assets []release.Asset) []release.Asset {
	seen := make(map[string]string, len(assets))
	out := assets[:0:0]
	for _, asset := range assets {
		name := asset.FileName()
		if first, ok := seen[name]; ok {
			m.logger.Warn("skipping asset with duplicate file name", "asset", asset.Name, "kept", first, "file", name)
			continue
		}
		seen[name] = asset.Name
		out = append(out, asset)
	}
	return out
}

// process handles one asset: skip it when cached, download it otherwise
func (m *Manager) process(ctx context.Context, asset release.Asset, dir string) Outcome {
	start := time.Now()

	if m.cache.Exists(dir, asset) {
		m.logger.Info("asset is cached", "asset", asset.Name)
		return Outcome{
			Asset:  asset,
			Status: StatusCached,
			Path:   m.cache.Path(dir, asset),
		}
	}

	m.logger.Info("downloading asset", "asset", asset.Name)
	path, err := m.downloader.Download(ctx, asset, dir)
	if err != nil {
		m.logger.Debug("download failed", "asset", asset.Name, "error", err)
		return Outcome{
			Asset:    asset,
			Status:   StatusFailed,
			Err:      err,
			Duration: time.Since(start),
		}
	}

	return Outcome{
		Asset:    asset,
		Status:   StatusDownloaded,
		Path:     path,
		Duration: time.Since(start),
	}
}
