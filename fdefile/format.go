package fdefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	magic         = "FDE1"
	formatVersion = 1

	headerSize      = 4 + 1 + 1 + 4 + 4
	blockHeaderSize = 12
)

var (
	// ErrBadMagic is returned when the input is not an FDE file.
	ErrBadMagic = errors.New("fdefile: bad magic")
	// ErrUnsupportedVersion is returned for files written by a newer format.
	ErrUnsupportedVersion = errors.New("fdefile: unsupported version")
	// ErrChecksum is returned when a block fails CRC32C verification.
	ErrChecksum = errors.New("fdefile: checksum mismatch")
	// ErrDimensionMismatch is returned when a vector has the wrong length.
	ErrDimensionMismatch = errors.New("fdefile: dimension mismatch")
	// ErrCountMismatch is returned when fewer or more vectors than announced
	// are written.
	ErrCountMismatch = errors.New("fdefile: vector count mismatch")
)

// CompressionType defines the compression algorithm used for blocks.
type CompressionType uint8

const (
	// CompressionNone stores every block raw.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("fdefile: unknown compression %q", s)
	}
}

// Header describes the vectors stored in a file.
type Header struct {
	Version     uint8
	Compression CompressionType
	Dimension   int
	Count       int
}

// Float32Bytes encodes v as little-endian float32 values.
func Float32Bytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return buf
}

// Float32FromBytes decodes little-endian float32 values.
func Float32FromBytes(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("fdefile: payload length %d is not a multiple of 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
