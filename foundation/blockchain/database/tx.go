package database

import (
	"encoding/json"
	"fmt"
	"time"
)

// TxRecord represents one transaction as it is committed inside a block. The
// ledger treats the fields as opaque beyond requiring that they serialize
// deterministically; callers set whatever fields their application needs,
// such as from/to/amount.
type TxRecord map[string]any

// NewTxRecord constructs a transaction record from the specified fields and
// verifies the record serializes. Rejecting an unserializable record here
// keeps an unstable representation from ever reaching the hash.
func NewTxRecord(fields map[string]any) (TxRecord, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("transaction record requires at least one field")
	}

	tx := make(TxRecord, len(fields)+1)
	for k, v := range fields {
		tx[k] = v
	}

	if _, err := json.Marshal(tx); err != nil {
		return nil, fmt.Errorf("transaction record is not serializable: %w", err)
	}

	return tx, nil
}

// NewTimedTxRecord constructs a transaction record stamped with the time it
// was received, which is how the submit API records transactions.
func NewTimedTxRecord(fields map[string]any) (TxRecord, error) {
	tx, err := NewTxRecord(fields)
	if err != nil {
		return nil, err
	}

	if _, exists := tx["timestamp"]; !exists {
		tx["timestamp"] = time.Now().UTC().Unix()
	}

	return tx, nil
}

// String implements the fmt.Stringer interface for logging.
func (tx TxRecord) String() string {
	data, err := json.Marshal(tx)
	if err != nil {
		return "unserializable"
	}

	return string(data)
}
