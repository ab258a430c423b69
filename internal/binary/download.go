package binary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

const (
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = release.DefaultUserAgent
	// maxRedirects bounds redirect chains (GitHub redirects assets to its CDN)
	maxRedirects = 10
	// binaryMode is applied to downloaded server binaries
	binaryMode os.FileMode = 0755
)

// Downloader fetches a single asset and writes it into a cache directory
type Downloader struct {
	client    *http.Client
	fs        afero.Fs
	userAgent string
	logger    logging.Logger
}

// NewDownloader creates a new downloader writing to fs.
// No request timeout is set; transfers run until the context ends.
func NewDownloader(fs afero.Fs, userAgent string) *Downloader {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Downloader{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		fs:        fs,
		userAgent: userAgent,
		logger:    logging.Nop(),
	}
}

// Download fetches asset into dir, decompressing it if its name carries a
// recognized compression suffix, and returns the destination path.
// Any failure is returned as *DownloadError.
func (d *Downloader) Download(ctx context.Context, asset release.Asset, dir string) (string, error) {
	destPath, err := d.download(ctx, asset, dir)
	if err != nil {
		return "", &DownloadError{Asset: asset.Name, Err: err}
	}
	return destPath, nil
}

func (d *Downloader) download(ctx context.Context, asset release.Asset, dir string) (string, error) {
	fileName := asset.FileName()
	if fileName == "" || fileName != filepath.Base(fileName) || fileName == "." || fileName == ".." {
		return "", fmt.Errorf("illegal asset file name: %q", asset.Name)
	}
	destPath := filepath.Join(dir, fileName)

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "application/octet-stream")

	// Execute request
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := newDecompressor(asset.Compression(), resp.Body)
	if err != nil {
		return "", err
	}
	defer body.Close()

	d.logger.Debug("writing asset", "asset", asset.Name, "path", destPath, "compression", asset.Compression())

	if err := d.writeFile(destPath, body); err != nil {
		return "", err
	}

	return destPath, nil
}

// writeFile streams r into destPath via a temporary file and an atomic rename
func (d *Downloader) writeFile(destPath string, r io.Reader) error {
	tmpPath := destPath + tmpSuffix
	tmpFile, err := d.fs.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, binaryMode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// Track whether we need to clean up the temp file
	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			tmpFile.Close()
			d.fs.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(destPath), err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := d.fs.Rename(tmpPath, destPath); err != nil {
		d.fs.Remove(tmpPath)
		cleanupNeeded = false
		return fmt.Errorf("rename temp file: %w", err)
	}
	cleanupNeeded = false

	// umask may have masked the mode given to OpenFile
	if err := d.fs.Chmod(destPath, binaryMode); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("set executable: %w", err)
	}

	return nil
}
