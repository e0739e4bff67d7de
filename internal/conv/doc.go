// Package conv converts between int and the fixed-width integers of the FDE
// file format, failing instead of silently wrapping.
package conv
