// Package mempool maintains the pool of transactions waiting to be mined
// into a block. Transactions are kept strictly in arrival order, which is
// the order they are committed inside a block.
package mempool

import (
	"sync"

	"github.com/powledger/powledger/foundation/blockchain/database"
)

// Mempool represents a queue of pending transactions ordered by arrival.
type Mempool struct {
	pool []database.TxRecord
	mu   sync.RWMutex
}

// New constructs a new mempool for pending transactions.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the back of the pool and returns the new
// pool length.
func (mp *Mempool) Add(tx database.TxRecord) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Snapshot returns a copy of the pool in arrival order. A mining operation
// works against a snapshot so transactions arriving while it runs land in
// the next block, never the one being mined.
func (mp *Mempool) Snapshot() []database.TxRecord {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.TxRecord, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// Release drops the first howMany transactions from the pool. It is called
// after a mining operation commits a snapshot of that size, leaving any
// transactions that arrived during the operation queued for the next block.
func (mp *Mempool) Release(howMany int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if howMany > len(mp.pool) {
		howMany = len(mp.pool)
	}

	mp.pool = append([]database.TxRecord{}, mp.pool[howMany:]...)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
