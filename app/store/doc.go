// Package store provides durable key-value backends for the history ledger.
// SQLite (WAL mode) is the default; a directory of files, Redis and a non-durable
// in-memory map are available as alternatives. All backends report a missing key
// as a nil value with no error.
package store
