// Package store abstracts where artifacts live. The addressing protocol only
// needs keyed byte blobs, so the same contract is served by a directory tree,
// an in-memory map, or an embedded key-value database.
package store

// Store is the artifact store contract. Keys are slash-separated relative
// paths ("folder/file.parquet"). Implementations must make Put atomic: a key
// is either fully written or absent, never partial.
type Store interface {
	// Put writes data under key, replacing any previous value.
	Put(key string, data []byte) error
	// Get returns the value for key, or an InputNotFound error.
	Get(key string) ([]byte, error)
	// Exists reports whether key is present.
	Exists(key string) (bool, error)
	// List returns all keys with the given prefix, sorted.
	List(prefix string) ([]string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases any resources held by the backing.
	Close() error
}
