package state

import (
	"github.com/powledger/powledger/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction record for inclusion in the next
// mined block. The record is appended to the pending pool in arrival order;
// no semantic validation of the fields is performed, but a record that does
// not serialize is rejected outright.
func (s *State) SubmitTransaction(fields map[string]any) (database.TxRecord, error) {
	tx, err := database.NewTimedTxRecord(fields)
	if err != nil {
		return nil, err
	}

	count := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: added: tx[%s]: pending[%d]", tx, count)

	return tx, nil
}
