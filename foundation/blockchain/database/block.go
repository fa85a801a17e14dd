package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/powledger/powledger/foundation/blockchain/digest"
)

// ErrNonceExhausted is returned from the POW function if the entire nonce
// space is searched without finding a solution. Unreachable in practice for
// any bounded difficulty, so it is treated as fatal by callers.
var ErrNonceExhausted = errors.New("nonce space exhausted, no solution found")

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Position of the block in the chain, genesis is 0.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was created, captured once at construction.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Difficulty    uint   `json:"difficulty"`      // Number of leading 0's the hash needed to match when mined.
}

// Block represents a group of transactions batched together with the hash
// the batch was sealed under. The Hash field is set once when mining
// succeeds and any later mismatch against ComputeHash signals tampering.
type Block struct {
	Hash   string      `json:"hash"`
	Header BlockHeader `json:"header"`
	Trans  []TxRecord  `json:"trans"`
}

// hashScope is the exact content a block hash commits to, in this field
// order. Changing the order or the tags changes every hash in existence, so
// any persisted or transmitted form must round-trip to this representation.
type hashScope struct {
	Number        uint64     `json:"index"`
	TimeStamp     uint64     `json:"timestamp"`
	Trans         []TxRecord `json:"data"`
	PrevBlockHash string     `json:"previous_hash"`
	Nonce         uint64     `json:"nonce"`
}

// POW constructs a new Block from the specified transactions and performs
// the work to find a nonce that solves the cryptographic POW puzzle.
func POW(ctx context.Context, difficulty uint, prevBlock Block, trans []TxRecord, evHandler func(v string, args ...any)) (Block, error) {

	// Construct the block to be mined. The nonce starts at zero and walks
	// the nonce space linearly until a solution is found.
	nb := Block{
		Header: BlockHeader{
			Number:        prevBlock.Header.Number + 1,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			PrevBlockHash: prevBlock.Hash,
			Nonce:         0,
			Difficulty:    difficulty,
		},
		Trans: trans,
	}

	// Perform the proof of work mining operation.
	if err := nb.performPOW(ctx, evHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started: block[%d]", b.Header.Number)
	defer ev("database: performPOW: MINING: completed: block[%d]", b.Header.Number)

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Trans {
		ev("database: performPOW: MINING: tx[%s]", tx)
	}

	// Loop until a solution is found or the caller cancels the search.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		// Did the caller cancel the mining operation.
		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle. The hash
		// must be recomputed after every nonce change.
		hash := b.ComputeHash()
		if !isHashSolved(b.Header.Difficulty, hash) {
			if b.Header.Nonce == math.MaxUint64 {
				return ErrNonceExhausted
			}
			b.Header.Nonce++
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		// Seal the block with the qualifying hash.
		b.Hash = hash

		return nil
	}
}

// ComputeHash derives the hash for the block from its current content. It is
// a pure function of (number, timestamp, transactions, previous hash, nonce)
// and does not read the stored Hash field.
func (b Block) ComputeHash() string {
	return digest.Hash(hashScope{
		Number:        b.Header.Number,
		TimeStamp:     b.Header.TimeStamp,
		Trans:         b.Trans,
		PrevBlockHash: b.Header.PrevBlockHash,
		Nonce:         b.Header.Nonce,
	})
}

// ValidateBlock takes a block and validates it against its predecessor. It
// detects in-place tampering of the block's content as well as breakage of
// the link to the previous block.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: stored hash matches content", b.Header.Number)

	if hash := b.ComputeHash(); b.Hash != hash {
		return fmt.Errorf("stored hash does not match content, got %s, exp %s", b.Hash, hash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: previous hash matches parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("previous hash doesn't match parent block, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.Hash)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block number is the next number", b.Header.Number)

	if b.Header.Number != previousBlock.Header.Number+1 {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", b.Header.Number, previousBlock.Header.Number+1)
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash has been solved", b.Header.Number)

	if !isHashSolved(b.Header.Difficulty, b.Hash) {
		return fmt.Errorf("%s invalid block hash for difficulty %d", b.Hash, b.Header.Difficulty)
	}

	return nil
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "00000000000000000"

	if len(hash) != digest.HashLen {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
