package public

import (
	"github.com/powledger/powledger/foundation/blockchain/database"
)

// tx is the payload clients submit for inclusion in the next block. The
// named fields carry the usual transfer shape; anything in data is carried
// through to the committed record untouched.
type tx struct {
	From   string         `json:"from" validate:"required"`
	To     string         `json:"to" validate:"required"`
	Amount float64        `json:"amount" validate:"required,gt=0"`
	Data   map[string]any `json:"data"`
}

// record flattens the payload into the free-form record shape the ledger
// commits.
func (t tx) record() map[string]any {
	fields := make(map[string]any, len(t.Data)+3)
	for k, v := range t.Data {
		fields[k] = v
	}
	fields["from"] = t.From
	fields["to"] = t.To
	fields["amount"] = t.Amount

	return fields
}

// block is the API representation of a block in the chain.
type block struct {
	Hash          string              `json:"hash"`
	Number        uint64              `json:"number"`
	TimeStamp     uint64              `json:"timestamp"`
	PrevBlockHash string              `json:"prev_block_hash"`
	Nonce         uint64              `json:"nonce"`
	Difficulty    uint                `json:"difficulty"`
	TransCount    int                 `json:"trans_count"`
	Trans         []database.TxRecord `json:"trans"`
}

// toBlock converts a database block to the API representation.
func toBlock(blk database.Block) block {
	return block{
		Hash:          blk.Hash,
		Number:        blk.Header.Number,
		TimeStamp:     blk.Header.TimeStamp,
		PrevBlockHash: blk.Header.PrevBlockHash,
		Nonce:         blk.Header.Nonce,
		Difficulty:    blk.Header.Difficulty,
		TransCount:    len(blk.Trans),
		Trans:         blk.Trans,
	}
}

// validity is the result of a chain integrity check.
type validity struct {
	Valid        bool    `json:"valid"`
	FailingBlock *uint64 `json:"failing_block,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}
