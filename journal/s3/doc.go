// Package s3 implements journal.Store for Amazon S3.
package s3
