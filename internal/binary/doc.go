// Package binary downloads frida-server release assets and caches them on
// disk, one directory per release version.
//
// # Cache Layout
//
//	<root>/
//	  <version>/
//	    <asset name without .xz/.gz suffix>
//
// A file's presence at its final path is the cache-hit signal. Downloads are
// written to a temporary file and renamed into place, so an interrupted
// download never looks like a cached asset.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.Config{
//	    Root:     "/home/user/.fridamanager",
//	    Releases: release.NewClient(),
//	})
//	if err != nil {
//	    return err
//	}
//
//	report, err := mgr.Fetch(ctx, binary.FetchOptions{Version: "16.0.0"})
//
// # Architecture
//
//   - Manager: resolves the release, filters assets and fans downloads out
//   - Cache: version directories and existence checks (afero-backed)
//   - Downloader: HTTP GET with streaming decompression
package binary
