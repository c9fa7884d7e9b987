// Package minio implements journal.Store for MinIO and S3-compatible object
// storage.
package minio
