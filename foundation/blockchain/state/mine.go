package state

import (
	"context"
	"errors"

	"github.com/powledger/powledger/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no pending transactions. Mining an empty block is rejected
// rather than producing a block with an empty batch.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// MineNewBlock attempts to create a new block with a proper hash that can
// become the next block in the chain. The pending pool is snapshotted once
// at the start, so transactions submitted while the search runs stay queued
// for the next block.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	// Are there transactions in the pool.
	trans := s.mempool.Snapshot()
	if len(trans) == 0 {
		return database.Block{}, ErrNoTransactions
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	// Attempt to create a new block by solving the POW puzzle. This can be
	// cancelled.
	block, err := database.POW(ctx, s.genesis.Difficulty, s.db.LatestBlock(), trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.updateLocalState(block, len(trans)); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// updateLocalState takes the mined block and updates the current state of
// the chain: the block is persisted and appended, then the mined
// transactions are released from the pool. There is no partial state; a
// block is never appended before a qualifying nonce was found and the pool
// is only trimmed after the append succeeds.
func (s *State) updateLocalState(block database.Block, minedTrans int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: updateLocalState: write block to storage")

	if err := s.db.Write(block, s.evHandler); err != nil {
		return err
	}

	s.evHandler("state: updateLocalState: release %d mined transactions from mempool", minedTrans)

	s.mempool.Release(minedTrans)

	return nil
}
