package fdefile

import (
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// compress returns the compressed payload, or nil when the block should be
// stored raw.
func compress(data []byte, ct CompressionType) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var compressed []byte
	switch ct {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, nil
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return nil, nil
	}
	return compressed, nil
}

func decompress(data []byte, uncompressedSize int, ct CompressionType) ([]byte, error) {
	result := make([]byte, uncompressedSize)

	switch ct {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(data, result)
		if err != nil {
			return nil, err
		}
		if n != uncompressedSize {
			return nil, errors.New("fdefile: decompressed size mismatch")
		}
		return result, nil

	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(data, result[:0])
		if err != nil {
			return nil, err
		}
		if len(decoded) != uncompressedSize {
			return nil, errors.New("fdefile: decompressed size mismatch")
		}
		return decoded, nil

	default:
		return nil, errors.New("fdefile: compressed block in uncompressed file")
	}
}
