// Package hash provides the CRC32-Castagnoli checksums used to validate
// dump and report uploads.
//
// Go's hash/crc32 uses the SSE4.2 or ARM CRC instructions when the CPU
// has them, so the table is built once at init and shared.
//
//	sum := hash.CRC32C(data)
//	header := hash.CRC32CBase64(data) // x-amz-checksum-crc32c form
package hash
