// Package fdefile stores collections of Fixed Dimensional Encodings.
//
// # Format
//
// All integers are little-endian.
//
//	header: "FDE1" | version u8 | compression u8 | dimension u32 | count u32
//	block:  uncompressed u32 | compressed u32 | crc32c u32 | payload
//
// There is one block per vector. The payload is the vector as little-endian
// float32 values, optionally compressed with LZ4 or ZSTD. A compressed size of
// 0 marks a block that is stored raw, which happens whenever compression does
// not shrink it below 90% of its size. The checksum covers the uncompressed
// payload.
//
// # Usage
//
//	w, _ := fdefile.NewWriter(f, dim, len(vectors), fdefile.CompressionZSTD)
//	for _, v := range vectors {
//	    _ = w.Write(v)
//	}
//	_ = w.Close()
//
//	r, _ := fdefile.NewReader(f)
//	all, _ := r.ReadAll()
package fdefile
