package binary

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/release"
)

func TestNewDecompressor(t *testing.T) {
	content := []byte("frida-server ELF payload")

	tests := []struct {
		name   string
		format release.Compression
		input  []byte
	}{
		{name: "none", format: release.CompressionNone, input: content},
		{name: "xz", format: release.CompressionXZ, input: xzBytes(t, content)},
		{name: "gzip", format: release.CompressionGzip, input: gzipBytes(t, content)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := newDecompressor(tt.format, bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("newDecompressor() error: %v", err)
			}
			defer rc.Close()

			got, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read decompressed data: %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("content mismatch:\ngot:  %q\nwant: %q", got, content)
			}
		})
	}
}

func TestNewDecompressor_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		format release.Compression
	}{
		{name: "xz", format: release.CompressionXZ},
		{name: "gzip", format: release.CompressionGzip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := newDecompressor(tt.format, strings.NewReader("definitely not compressed"))
			if err != nil {
				// Header validation failed up front
				return
			}
			defer rc.Close()

			if _, err := io.ReadAll(rc); err == nil {
				t.Error("expected error reading corrupt stream")
			}
		})
	}
}

func TestNewDecompressor_Unsupported(t *testing.T) {
	if _, err := newDecompressor(release.Compression("zstd"), strings.NewReader("")); err == nil {
		t.Error("expected error for unsupported compression")
	}
}
