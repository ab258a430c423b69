package binary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// tmpSuffix marks in-progress downloads. Files with this suffix are never cache hits.
const tmpSuffix = ".tmp"

// ErrInvalidVersion is returned for release versions that cannot be used as a
// directory name inside the cache root.
var ErrInvalidVersion = errors.New("invalid release version")

// Cache maps release versions and assets to paths under a cache root
type Cache struct {
	fs   afero.Fs
	root string
	// homeDir reports the user's home directory; Clean refuses it and its ancestors
	homeDir func() (string, error)
}

// CachedVersion lists the files cached for one release version
type CachedVersion struct {
	Version string
	Files   []string
}

// NewCache creates a cache rooted at root on the OS filesystem
func NewCache(root string) *Cache {
	return NewCacheWithFS(afero.NewOsFs(), root)
}

// NewCacheWithFS creates a cache on the given filesystem
func NewCacheWithFS(fs afero.Fs, root string) *Cache {
	return &Cache{
		fs:      fs,
		root:    filepath.Clean(root),
		homeDir: os.UserHomeDir,
	}
}

// Root returns the cache root directory
func (c *Cache) Root() string {
	return c.root
}

// FS returns the filesystem backing the cache
func (c *Cache) FS() afero.Fs {
	return c.fs
}

// EnsureRoot creates the cache root if it does not exist
func (c *Cache) EnsureRoot() error {
	if err := c.fs.MkdirAll(c.root, 0755); err != nil {
		return &FilesystemError{Op: "create cache root", Path: c.root, Err: err}
	}
	return nil
}

// VersionDir returns the directory for version, creating it if needed.
// Versions that would not stay a single directory below the root are rejected.
func (c *Cache) VersionDir(version string) (string, error) {
	if err := validateVersion(version); err != nil {
		return "", &FilesystemError{Op: "resolve version directory", Path: version, Err: err}
	}

	dir := filepath.Join(c.root, version)

	// Security check: the joined path must be a direct child of the root
	if filepath.Dir(dir) != c.root {
		return "", &FilesystemError{
			Op:   "resolve version directory",
			Path: version,
			Err:  fmt.Errorf("%w: escapes cache root", ErrInvalidVersion),
		}
	}

	if err := c.fs.MkdirAll(dir, 0755); err != nil {
		return "", &FilesystemError{Op: "create version directory", Path: dir, Err: err}
	}

	return dir, nil
}

// Path returns the cache path of asset inside dir
func (c *Cache) Path(dir string, asset release.Asset) string {
	return filepath.Join(dir, asset.FileName())
}

// Exists reports whether asset is already cached in dir
func (c *Cache) Exists(dir string, asset release.Asset) bool {
	return fileExists(c.fs, c.Path(dir, asset))
}

// Clean removes everything below the cache root and recreates the root.
// The filesystem root, the user's home directory and its ancestors are refused.
func (c *Cache) Clean() error {
	if c.root == "" || c.root == "." || c.root == string(filepath.Separator) {
		return &FilesystemError{Op: "clean cache", Path: c.root, Err: errors.New("refusing to remove this directory")}
	}
	if home, err := c.homeDir(); err == nil && home != "" && isWithin(filepath.Clean(home), c.root) {
		return &FilesystemError{Op: "clean cache", Path: c.root, Err: errors.New("refusing to remove the home directory or one of its parents")}
	}

	if err := c.fs.RemoveAll(c.root); err != nil {
		return &FilesystemError{Op: "remove cache root", Path: c.root, Err: err}
	}

	return c.EnsureRoot()
}

// Versions lists the cached release versions and their files, sorted by version name
func (c *Cache) Versions() ([]CachedVersion, error) {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &FilesystemError{Op: "read cache root", Path: c.root, Err: err}
	}

	var versions []CachedVersion
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(c.root, entry.Name())
		files, err := afero.ReadDir(c.fs, dir)
		if err != nil {
			return nil, &FilesystemError{Op: "read version directory", Path: dir, Err: err}
		}

		cv := CachedVersion{Version: entry.Name()}
		for _, f := range files {
			if f.Mode().IsRegular() && !strings.HasSuffix(f.Name(), tmpSuffix) {
				cv.Files = append(cv.Files, f.Name())
			}
		}
		sort.Strings(cv.Files)
		versions = append(versions, cv)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions, nil
}

// validateVersion rejects versions that are unusable as a single path element
func validateVersion(version string) error {
	switch {
	case strings.TrimSpace(version) == "":
		return fmt.Errorf("%w: empty", ErrInvalidVersion)
	case version == "." || version == "..":
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	case strings.ContainsAny(version, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator or NUL", ErrInvalidVersion, version)
	}
	return nil
}

// isWithin reports whether path is dir or lies below it
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// fileExists checks if a regular file exists at path. Partial downloads only
// ever live under a .tmp name, so presence alone marks a cache hit.
func fileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
