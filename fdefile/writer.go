package fdefile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/fde/internal/conv"
	"github.com/hupe1980/fde/internal/hash"
)

// Writer writes a fixed number of equally long vectors.
// It is not safe for concurrent use.
type Writer struct {
	w           *bufio.Writer
	compression CompressionType
	dimension   int
	count       int
	written     int
	bytes       int64
}

// NewWriter writes the file header and returns a Writer expecting exactly
// count vectors of length dimension.
func NewWriter(w io.Writer, dimension, count int, compression CompressionType) (*Writer, error) {
	if dimension <= 0 || dimension > math.MaxUint32/4 {
		return nil, fmt.Errorf("fdefile: invalid dimension %d", dimension)
	}
	if compression > CompressionZSTD {
		return nil, fmt.Errorf("fdefile: unknown compression %d", compression)
	}
	dim32, err := conv.IntToUint32(dimension)
	if err != nil {
		return nil, err
	}
	count32, err := conv.IntToUint32(count)
	if err != nil {
		return nil, err
	}

	var hdr [headerSize]byte
	copy(hdr[:4], magic)
	hdr[4] = formatVersion
	hdr[5] = uint8(compression)
	binary.LittleEndian.PutUint32(hdr[6:], dim32)
	binary.LittleEndian.PutUint32(hdr[10:], count32)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return nil, err
	}

	return &Writer{
		w:           bw,
		compression: compression,
		dimension:   dimension,
		count:       count,
		bytes:       headerSize,
	}, nil
}

// Write appends one vector as a block.
func (w *Writer) Write(v []float32) error {
	if len(v) != w.dimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), w.dimension)
	}
	if w.written >= w.count {
		return fmt.Errorf("%w: more than %d vectors", ErrCountMismatch, w.count)
	}

	payload := Float32Bytes(v)
	compressed, err := compress(payload, w.compression)
	if err != nil {
		return err
	}

	var hdr [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(hdr[8:], hash.CRC32C(payload))

	data := payload
	if compressed != nil {
		data = compressed
	}

	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}

	w.written++
	w.bytes += int64(blockHeaderSize + len(data))
	return nil
}

// BytesWritten returns the number of bytes produced so far, header included.
func (w *Writer) BytesWritten() int64 {
	return w.bytes
}

// Close flushes buffered data. It fails if fewer vectors than announced were
// written. Close does not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.written != w.count {
		return fmt.Errorf("%w: wrote %d of %d vectors", ErrCountMismatch, w.written, w.count)
	}
	return nil
}

// WriteAll writes vectors to w as a complete file.
func WriteAll(w io.Writer, dimension int, compression CompressionType, vectors [][]float32) error {
	fw, err := NewWriter(w, dimension, len(vectors), compression)
	if err != nil {
		return err
	}
	for _, v := range vectors {
		if err := fw.Write(v); err != nil {
			return err
		}
	}
	return fw.Close()
}
