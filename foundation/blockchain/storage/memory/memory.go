// Package memory implements the database.Serializer interface by keeping
// blocks in memory. It exists for tests and for running a node with no
// persistence at all.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/powledger/powledger/foundation/blockchain/database"
)

// Memory represents the in-memory serialization implementation. This
// implements the database.Serializer interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.Block
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do.
func (m *Memory) Close() error {
	return nil
}

// Write appends the specified block to the in-memory store.
func (m *Memory) Write(block database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = append(m.blocks, block)

	return nil
}

// GetBlock returns the contents of the specified block by number. Blocks
// are stored starting with block number 1.
func (m *Memory) GetBlock(num uint64) (database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num == 0 || num > uint64(len(m.blocks)) {
		return database.Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return m.blocks[num-1], nil
}

// ForEach returns an iterator to walk through all the blocks starting with
// block number 1.
func (m *Memory) ForEach() database.Iterator {
	return &iterator{memory: m}
}

// Reset clears out all the stored blocks.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = nil

	return nil
}

// =============================================================================

// iterator represents the iteration implementation for walking through the
// blocks in memory. This implements the database.Iterator interface.
type iterator struct {
	memory  *Memory // Access to the memory storage API.
	current uint64  // Current block number being iterated over.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from memory.
func (it *iterator) Next() (database.Block, error) {
	if it.eoc {
		return database.Block{}, errors.New("end of chain")
	}

	it.current++
	block, err := it.memory.GetBlock(it.current)
	if err != nil {
		it.eoc = true
	}

	return block, err
}

// Done returns the end of chain value.
func (it *iterator) Done() bool {
	return it.eoc
}
