// Package hash provides the checksum used by the FDE file format.
//
// Blocks are protected with CRC32-Castagnoli (CRC32C), which Go computes
// with hardware instructions on x86 (SSE4.2) and ARM (CRC extension).
//
//	checksum := hash.CRC32C(payload)
package hash
