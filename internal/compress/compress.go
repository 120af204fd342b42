// Package compress wraps table sources and result files with the
// decompressor or compressor matching their file extension.
package compress

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Type is a compression format
type Type int

const (
	None Type = iota
	Gzip
	Bzip2
	XZ
	Zstd
)

var extensions = map[Type]string{
	Gzip:  ".gz",
	Bzip2: ".bz2",
	XZ:    ".xz",
	Zstd:  ".zst",
}

// ErrUnsupported is returned for formats that cannot be written
var ErrUnsupported = errors.New("unsupported compression")

// String returns the format name
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case XZ:
		return "xz"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Extension returns the file suffix of the format, empty for None
func (t Type) Extension() string {
	return extensions[t]
}

// Detect returns the compression format implied by the suffix of path
func Detect(path string) Type {
	lower := strings.ToLower(path)
	for _, t := range []Type{Gzip, Bzip2, XZ, Zstd} {
		if strings.HasSuffix(lower, extensions[t]) {
			return t
		}
	}
	return None
}

// Strip removes a compression suffix from path, if any
func Strip(path string) string {
	if ext := Detect(path).Extension(); ext != "" {
		return path[:len(path)-len(ext)]
	}
	return path
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

type zstdReader struct{ *zstd.Decoder }

func (z zstdReader) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader wraps r with a decompressor for t.
// Closing the result does not close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return nopCloser{r}, nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return zr, nil
	case Bzip2:
		return nopCloser{bzip2.NewReader(r)}, nil
	case XZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return nopCloser{xr}, nil
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zstdReader{d}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with a compressor for t. Close flushes the compressed
// stream but does not close w. Bzip2 cannot be written.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case XZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xw, nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zw, nil
	}
	return nil, fmt.Errorf("%w: %s cannot be written", ErrUnsupported, t)
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (f *fileReader) Close() error {
	return errors.Join(f.ReadCloser.Close(), f.file.Close())
}

// Open opens path and decompresses it according to its suffix
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, err := NewReader(f, Detect(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileReader{ReadCloser: r, file: f}, nil
}

type fileWriter struct {
	io.WriteCloser
	file *os.File
}

func (f *fileWriter) Close() error {
	err := f.WriteCloser.Close()
	if syncErr := f.file.Sync(); syncErr != nil && err == nil {
		err = syncErr
	}
	if closeErr := f.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Create creates path and compresses what is written according to its suffix
func Create(path string) (io.WriteCloser, error) {
	t := Detect(path)
	if t == Bzip2 {
		return nil, fmt.Errorf("%w: %s cannot be written", ErrUnsupported, t)
	}
	f, err := os.Create(path) //nolint:gosec // path comes from the caller
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	w, err := NewWriter(f, t)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileWriter{WriteCloser: w, file: f}, nil
}
