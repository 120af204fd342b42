package compress

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Type
	}{
		{"data.csv", None},
		{"data.csv.gz", Gzip},
		{"DATA.CSV.GZ", Gzip},
		{"data.tsv.bz2", Bzip2},
		{"data.csv.xz", XZ},
		{"data.csv.zst", Zstd},
		{"gz", None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.path), tt.path)
	}

	assert.Equal(t, "data.csv", Strip("data.csv.gz"))
	assert.Equal(t, "data.csv", Strip("data.csv"))
	assert.Equal(t, ".zst", Zstd.Extension())
	assert.Empty(t, None.Extension())
}

func TestRoundTrip(t *testing.T) {
	payload := []byte("a,b,c\n1,2,3\n")

	for _, typ := range []Type{None, Gzip, XZ, Zstd} {
		t.Run(typ.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, typ)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(&buf, typ)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, payload, got)
		})
	}
}

func TestBzip2IsReadOnly(t *testing.T) {
	_, err := NewWriter(io.Discard, Bzip2)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Create(filepath.Join(t.TempDir(), "out.csv.bz2"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("name\nalice\n")

	for _, name := range []string{"plain.csv", "gz.csv.gz", "xz.csv.xz", "zst.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)

			w, err := Create(path)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}

	_, err := Open(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestInvalidStream(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not gzip")), Gzip)
	assert.Error(t, err)
}
