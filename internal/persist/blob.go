// Package persist provides durable storage for the serialized transaction
// list. The whole list is kept as one blob under one fixed key; adapters
// implement that contract on top of a JSON file or a SQLite database.
package persist

import "context"

// DefaultKey is the fixed key the transaction list is stored under.
const DefaultKey = "financeTrackerTransactions"

// BlobStore reads and writes a single serialized blob under a fixed key.
type BlobStore interface {
	// Load returns the stored blob. ok is false when nothing has been
	// stored yet; that is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)

	// Save replaces the stored blob.
	Save(ctx context.Context, data []byte) error
}
