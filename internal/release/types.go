// Package release models GitHub releases of the frida project and fetches
// them from the GitHub releases API.
package release

import "strings"

// Compression identifies a compressed-format suffix on an asset name.
type Compression string

const (
	// CompressionNone means the asset is stored verbatim.
	CompressionNone Compression = ""
	// CompressionXZ marks ".xz" assets.
	CompressionXZ Compression = "xz"
	// CompressionGzip marks ".gz" assets.
	CompressionGzip Compression = "gzip"
)

// compressionSuffixes maps recognized name suffixes to their format.
var compressionSuffixes = map[string]Compression{
	".xz": CompressionXZ,
	".gz": CompressionGzip,
}

// Suffix returns the file-name suffix for the format ("" for none).
func (c Compression) Suffix() string {
	for suffix, format := range compressionSuffixes {
		if format == c {
			return suffix
		}
	}
	return ""
}

// String returns the format name, or "none".
func (c Compression) String() string {
	if c == CompressionNone {
		return "none"
	}
	return string(c)
}

// Asset is one downloadable file of a release.
// It is a plain value and is copied into download workers.
type Asset struct {
	Name        string // Filename as published, e.g. "frida-server-16.0.0-android-arm64.xz"
	ContentType string // Declared MIME type (advisory only)
	DownloadURL string // browser_download_url
}

// Compression returns the compressed format indicated by the asset name.
func (a Asset) Compression() Compression {
	for suffix, format := range compressionSuffixes {
		if strings.HasSuffix(a.Name, suffix) && len(a.Name) > len(suffix) {
			return format
		}
	}
	return CompressionNone
}

// FileName returns the name the asset has on disk after decompression.
func (a Asset) FileName() string {
	if c := a.Compression(); c != CompressionNone {
		return strings.TrimSuffix(a.Name, c.Suffix())
	}
	return a.Name
}

// HasPrefix reports whether the asset name starts with prefix.
func (a Asset) HasPrefix(prefix string) bool {
	return strings.HasPrefix(a.Name, prefix)
}

// Release is one tagged publication of the upstream project.
type Release struct {
	Version string  // tag_name, used as the cache directory name
	Assets  []Asset // in upstream order
}
