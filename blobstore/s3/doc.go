// Package s3 stores validation dumps and benchmark reports in Amazon S3.
//
// Small blobs are written with a single PutObject carrying a CRC32C
// checksum. Streaming writes pipe through the SDK upload manager, which
// switches to multipart uploads for large dumps.
package s3
