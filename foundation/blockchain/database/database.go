// Package database handles the lower level support for maintaining the
// chain of blocks in memory and, through a serializer, on whatever medium a
// collaborator provides.
package database

import (
	"fmt"
	"sync"

	"github.com/powledger/powledger/foundation/blockchain/digest"
	"github.com/powledger/powledger/foundation/blockchain/genesis"
)

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading blocks. Block 0 is
// the genesis block and is derived from the genesis configuration, so
// serializers only ever see blocks 1 and up.
type Serializer interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}

// =============================================================================

// ChainError identifies the first block that failed chain validation and
// the reason it failed.
type ChainError struct {
	Number uint64
	Err    error
}

// Error implements the error interface.
func (ce *ChainError) Error() string {
	return fmt.Sprintf("block %d: %s", ce.Number, ce.Err)
}

// Unwrap exposes the underlying validation failure.
func (ce *ChainError) Unwrap() error {
	return ce.Err
}

// =============================================================================

// Database manages the chain of blocks. Index 0 is always the genesis block,
// created at construction and never removed or reordered; everything else is
// append only.
type Database struct {
	mu sync.RWMutex

	genesis    genesis.Genesis
	blocks     []Block
	serializer Serializer
}

// New constructs a new database, seeds it with the genesis block, and
// reloads and re-validates any blocks the serializer already holds.
func New(genesis genesis.Genesis, serializer Serializer, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:    genesis,
		blocks:     []Block{newGenesisBlock(genesis)},
		serializer: serializer,
	}

	// Read any existing blocks from the serializer into memory, validating
	// each against its predecessor as it is loaded. A chain that doesn't
	// re-validate is corrupt and must not be served.
	latestBlock := db.blocks[0]

	iter := serializer.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := block.ValidateBlock(latestBlock, evHandler); err != nil {
			return nil, &ChainError{Number: block.Header.Number, Err: err}
		}

		db.blocks = append(db.blocks, block)
		latestBlock = block
	}

	return &db, nil
}

// Close closes the underlying serializer.
func (db *Database) Close() {
	db.serializer.Close()
}

// Reset clears the chain back to just the genesis block.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.serializer.Reset(); err != nil {
		return err
	}

	db.blocks = []Block{newGenesisBlock(db.genesis)}

	return nil
}

// Write validates the specified block against the current latest block and,
// if it passes, persists it and appends it to the chain. The append is
// atomic with respect to readers; no partially appended chain is ever
// observable.
func (db *Database) Write(block Block, evHandler func(v string, args ...any)) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := block.ValidateBlock(db.blocks[len(db.blocks)-1], evHandler); err != nil {
		return err
	}

	if err := db.serializer.Write(block); err != nil {
		return err
	}

	db.blocks = append(db.blocks, block)

	return nil
}

// LatestBlock returns the current latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// Height returns the number of blocks in the chain including genesis.
func (db *Database) Height() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// GetBlock returns the block for the specified number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return db.blocks[num], nil
}

// CopyBlocks returns a copy of the chain for read access by callers. The
// block values share the underlying transaction records, which callers must
// treat as read only.
func (db *Database) CopyBlocks() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// ValidateChain walks the chain from block 1 to the end checking that every
// block's stored hash matches its recomputed content hash and that it
// correctly references its predecessor. The walk short circuits on the first
// violation, identified by the returned ChainError. A nil return means the
// chain is intact. The walk is read only and deterministic.
func (db *Database) ValidateChain(evHandler func(v string, args ...any)) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return ValidateBlocks(db.blocks, evHandler)
}

// ValidateBlocks checks the integrity of an ordered sequence of blocks where
// index 0 is a trusted genesis. The genesis block is the chain root and is
// not re-derived against a predecessor.
func ValidateBlocks(blocks []Block, evHandler func(v string, args ...any)) error {
	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1], evHandler); err != nil {
			return &ChainError{Number: blocks[i].Header.Number, Err: err}
		}
	}

	return nil
}

// =============================================================================

// newGenesisBlock constructs block 0 from the genesis configuration. The
// genesis block carries the zero hash sentinel as its previous hash and a
// fixed sentinel payload; its hash is computed but not difficulty bound.
func newGenesisBlock(g genesis.Genesis) Block {
	block := Block{
		Header: BlockHeader{
			Number:        0,
			TimeStamp:     uint64(g.Date.UTC().Unix()),
			PrevBlockHash: digest.ZeroHash,
			Nonce:         0,
			Difficulty:    g.Difficulty,
		},
		Trans: []TxRecord{
			{"from": "system", "to": "genesis", "amount": 0},
		},
	}
	block.Hash = block.ComputeHash()

	return block
}
