// Package journal persists committed improvements so a search's history and
// accepted result survive the process.
//
// A Journal appends one record per commit to a Store under sequential keys,
// plus a final "accepted" record. Stores are pluggable: in-memory, local
// filesystem, MinIO and S3 backends ship with the package.
//
// Codec and compressor selection is a compatibility boundary: records written
// with one codec/compressor pair can only be replayed with the same pair.
package journal
