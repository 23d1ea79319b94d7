// Package sqlite provides a SQLite-backed implementation of the
// VectorStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Embeddings are
// stored as little-endian float32 BLOBs next to the chunk text, and
// similarity search is a brute-force cosine scan over the candidate
// rows. At the scale of a personal policy collection this is faster
// than maintaining a separate vector index.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.policyq/data/policyq.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
