package fdefile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/fde/internal/conv"
	"github.com/hupe1980/fde/internal/hash"
)

// Reader reads vectors from an FDE file.
type Reader struct {
	r      *bufio.Reader
	header Header
	read   int
}

// NewReader reads and validates the file header.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("fdefile: read header: %w", err)
	}
	if string(hdr[:4]) != magic {
		return nil, ErrBadMagic
	}
	if hdr[4] != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr[4])
	}
	compression := CompressionType(hdr[5])
	if compression > CompressionZSTD {
		return nil, fmt.Errorf("fdefile: unknown compression %d", compression)
	}

	dim, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(hdr[6:]))
	if err != nil {
		return nil, err
	}
	count, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(hdr[10:]))
	if err != nil {
		return nil, err
	}

	return &Reader{
		r: br,
		header: Header{
			Version:     hdr[4],
			Compression: compression,
			Dimension:   dim,
			Count:       count,
		},
	}, nil
}

// Header returns the file header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next vector, or io.EOF after the last one.
func (r *Reader) Next() ([]float32, error) {
	if r.read >= r.header.Count {
		return nil, io.EOF
	}

	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return nil, fmt.Errorf("fdefile: block %d: %w", r.read, err)
	}
	uncompressedSize := binary.LittleEndian.Uint32(hdr[0:])
	compressedSize := binary.LittleEndian.Uint32(hdr[4:])
	checksum := binary.LittleEndian.Uint32(hdr[8:])

	want := r.header.Dimension * 4
	if int64(uncompressedSize) != int64(want) {
		return nil, fmt.Errorf("%w: block %d holds %d bytes, want %d", ErrDimensionMismatch, r.read, uncompressedSize, want)
	}
	if int64(compressedSize) > int64(want) {
		return nil, fmt.Errorf("fdefile: block %d: compressed size %d exceeds payload", r.read, compressedSize)
	}

	var payload []byte
	if compressedSize == 0 {
		payload = make([]byte, want)
		if _, err := io.ReadFull(r.r, payload); err != nil {
			return nil, fmt.Errorf("fdefile: block %d: %w", r.read, err)
		}
	} else {
		data := make([]byte, compressedSize)
		if _, err := io.ReadFull(r.r, data); err != nil {
			return nil, fmt.Errorf("fdefile: block %d: %w", r.read, err)
		}
		var err error
		payload, err = decompress(data, want, r.header.Compression)
		if err != nil {
			return nil, fmt.Errorf("fdefile: block %d: %w", r.read, err)
		}
	}

	if hash.CRC32C(payload) != checksum {
		return nil, fmt.Errorf("%w: block %d", ErrChecksum, r.read)
	}

	r.read++
	return Float32FromBytes(payload)
}

// ReadAll returns all remaining vectors.
func (r *Reader) ReadAll() ([][]float32, error) {
	out := make([][]float32, 0, min(r.header.Count-r.read, 1<<16))
	for {
		v, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}
