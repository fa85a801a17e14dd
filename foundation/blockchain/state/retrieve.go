package state

import (
	"github.com/powledger/powledger/foundation/blockchain/database"
	"github.com/powledger/powledger/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveBlocks returns a read-only copy of the full chain of blocks.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.CopyBlocks()
}

// RetrieveMempool returns a read-only copy of the pending transactions in
// arrival order.
func (s *State) RetrieveMempool() []database.TxRecord {
	return s.mempool.Snapshot()
}

// QueryBlockByNumber returns the block for the specified number.
func (s *State) QueryBlockByNumber(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}
