// Package blobstore is the destination layer for validation dumps and
// benchmark reports.
//
// Store is implemented by MemoryStore, LocalStore, s3.Store and
// minio.Store. All implementations are safe for concurrent use.
package blobstore
