// Package jsondb provides a generic data store over flat JSON array files.
//
// # Overview
//
// The package centers around [Table], a generic container that persists rows
// as a single pretty-printed JSON array. The file on disk is the sole owner of
// the data: every read loads the whole file fresh, and every mutation rewrites
// it in full. There is no in-memory cache shared across requests.
//
// # Concurrency: Pessimistic Locking
//
// [Table.Modify] holds the table lock for the entire read-modify-write cycle,
// so concurrent mutations within one process cannot lose updates. Writers in
// other processes still race last-write-wins on the same file; that is an
// accepted limitation of flat-file storage at single-admin scale, not a bug
// this package tries to hide.
//
// # File Format
//
// A UTF-8 JSON array of flat objects, indented for hand editing, with no
// embedded schema version. A missing or unparseable file reads as an empty
// table. Rows that fail their own Validate are skipped on load with a warning
// rather than silently coerced.
package jsondb
