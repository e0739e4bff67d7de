package fdefile

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fde/testutil"
)

func sparseVectors(n, dim int) [][]float32 {
	rng := testutil.NewRNG(1)
	vectors := make([][]float32, n)
	for i := range vectors {
		v := make([]float32, dim)
		// FDEs of small documents are mostly empty partitions.
		for j := 0; j < dim/8; j++ {
			v[rng.Intn(dim)] = float32(rng.Intn(100)) / 10
		}
		vectors[i] = v
	}
	return vectors
}

func TestRoundTrip(t *testing.T) {
	const dim = 256
	vectors := sparseVectors(5, dim)
	vectors = append(vectors, testutil.NewRNG(2).GaussianPointCloud(1, dim))

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteAll(&buf, dim, ct, vectors))

			r, err := NewReader(&buf)
			require.NoError(t, err)
			assert.Equal(t, Header{Version: 1, Compression: ct, Dimension: dim, Count: len(vectors)}, r.Header())

			got, err := r.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, vectors, got)

			_, err = r.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestCompressionShrinksSparseVectors(t *testing.T) {
	const dim = 1024
	vectors := sparseVectors(4, dim)

	var raw, zstd bytes.Buffer
	require.NoError(t, WriteAll(&raw, dim, CompressionNone, vectors))
	require.NoError(t, WriteAll(&zstd, dim, CompressionZSTD, vectors))

	assert.Equal(t, headerSize+4*(blockHeaderSize+dim*4), raw.Len())
	assert.Less(t, zstd.Len(), raw.Len()/2)
}

func TestIncompressibleBlockStoredRaw(t *testing.T) {
	v := testutil.NewRNG(3).GaussianPointCloud(1, 64)

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, 64, CompressionLZ4, [][]float32{v}))

	b := buf.Bytes()
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(b[headerSize+4:]))
	assert.Len(t, b, headerSize+blockHeaderSize+64*4)
}

func TestWriterValidation(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewWriter(&buf, 0, 1, CompressionNone)
	assert.Error(t, err)
	_, err = NewWriter(&buf, 4, 1, CompressionType(9))
	assert.Error(t, err)

	w, err := NewWriter(&buf, 4, 1, CompressionNone)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Write([]float32{1, 2, 3}), ErrDimensionMismatch)
	assert.ErrorIs(t, w.Close(), ErrCountMismatch)

	require.NoError(t, w.Write([]float32{1, 2, 3, 4}))
	assert.ErrorIs(t, w.Write([]float32{1, 2, 3, 4}), ErrCountMismatch)
	require.NoError(t, w.Close())
	assert.Equal(t, int64(headerSize+blockHeaderSize+16), w.BytesWritten())
}

func TestReaderRejectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, 4, CompressionNone, [][]float32{{1, 2, 3, 4}}))
	good := buf.Bytes()

	t.Run("magic", func(t *testing.T) {
		b := bytes.Clone(good)
		b[0] = 'X'
		_, err := NewReader(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("version", func(t *testing.T) {
		b := bytes.Clone(good)
		b[4] = 9
		_, err := NewReader(bytes.NewReader(b))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("checksum", func(t *testing.T) {
		b := bytes.Clone(good)
		b[len(b)-1] ^= 0xFF
		r, err := NewReader(bytes.NewReader(b))
		require.NoError(t, err)
		_, err = r.Next()
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("truncated", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(good[:len(good)-2]))
		require.NoError(t, err)
		_, err = r.ReadAll()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("short header", func(t *testing.T) {
		_, err := NewReader(bytes.NewReader(good[:5]))
		assert.Error(t, err)
	})
}

func TestFloat32Bytes(t *testing.T) {
	v := []float32{0, -1.5, 3.25}
	b := Float32Bytes(v)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0xC0, 0xBF, 0, 0, 0x50, 0x40}, b)

	got, err := Float32FromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = Float32FromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]CompressionType{"": CompressionNone, "none": CompressionNone, "LZ4": CompressionLZ4, "zstd": CompressionZSTD} {
		got, err := ParseCompression(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCompression("gzip")
	assert.Error(t, err)
}
