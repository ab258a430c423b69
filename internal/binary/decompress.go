package binary

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

// newDecompressor wraps r with a streaming decoder for format.
// CompressionNone returns r unchanged.
func newDecompressor(format release.Compression, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case release.CompressionNone:
		return io.NopCloser(r), nil

	case release.CompressionXZ:
		xr, err := xz.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("create xz reader: %w", err)
		}
		return io.NopCloser(xr), nil

	case release.CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return gr, nil

	default:
		return nil, fmt.Errorf("unsupported compression: %s", format)
	}
}
