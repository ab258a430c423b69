package binary

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/ulikunitz/xz"
)

// xzBytes compresses content with xz
func xzBytes(t *testing.T, content []byte) []byte {
	t.Helper()

	data, err := xzEncode(content)
	if err != nil {
		t.Fatalf("failed to xz-compress content: %v", err)
	}
	return data
}

// xzEncode compresses content with xz. Safe to call from server handlers.
func xzEncode(content []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipBytes compresses content with gzip
func gzipBytes(t *testing.T, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(content); err != nil {
		t.Fatalf("failed to write gzip content: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}
