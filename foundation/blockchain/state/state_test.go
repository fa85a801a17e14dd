package state_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/powledger/powledger/foundation/blockchain/genesis"
	"github.com/powledger/powledger/foundation/blockchain/state"
	"github.com/powledger/powledger/foundation/blockchain/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTestState(t *testing.T, difficulty uint, ev state.EventHandler) *state.State {
	t.Helper()

	storage, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create memory storage: %v", failed, err)
	}

	st, err := state.New(state.Config{
		Genesis:   genesis.New(difficulty),
		Storage:   storage,
		EvHandler: ev,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create the state: %v", failed, err)
	}

	return st
}

func Test_SubmitAndMine(t *testing.T) {
	const difficulty = 4

	t.Log("Given the need to mine submitted transactions into a block.")
	{
		t.Logf("\tTest 0:\tWhen submitting two transactions and mining at difficulty %d.", difficulty)
		{
			st := newTestState(t, difficulty, nil)

			if _, err := st.SubmitTransaction(map[string]any{"from": "alice", "to": "bob", "amount": 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the first transaction: %v", failed, err)
			}
			if _, err := st.SubmitTransaction(map[string]any{"from": "bob", "to": "carol", "amount": 5}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the second transaction: %v", failed, err)
			}

			block, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			if !strings.HasPrefix(block.Hash, "0000") {
				t.Errorf("\t%s\tTest 0:\tShould have 4 leading zeros: got %s", failed, block.Hash)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have 4 leading zeros.", success)
			}

			blocks := st.RetrieveBlocks()
			if len(blocks) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have a chain of 2 blocks: got %d", failed, len(blocks))
			}
			t.Logf("\t%s\tTest 0:\tShould have a chain of 2 blocks.", success)

			trans := blocks[1].Trans
			if len(trans) != 2 || trans[0]["from"] != "alice" || trans[1]["from"] != "bob" {
				t.Errorf("\t%s\tTest 0:\tShould carry both transactions in submission order: got %v", failed, trans)
			} else {
				t.Logf("\t%s\tTest 0:\tShould carry both transactions in submission order.", success)
			}

			if st.QueryMempoolLength() != 0 {
				t.Errorf("\t%s\tTest 0:\tShould have an empty mempool: got %d", failed, st.QueryMempoolLength())
			} else {
				t.Logf("\t%s\tTest 0:\tShould have an empty mempool.", success)
			}

			if err := st.ValidateChain(); err != nil {
				t.Errorf("\t%s\tTest 0:\tShould have a valid chain: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a valid chain.", success)
			}
		}
	}
}

func Test_SubmitRejected(t *testing.T) {
	t.Log("Given the need to reject bad transaction records at intake.")
	{
		t.Logf("\tTest 0:\tWhen submitting an unserializable record.")
		{
			st := newTestState(t, 1, nil)

			if _, err := st.SubmitTransaction(map[string]any{"from": "alice", "to": "bob", "amount": math.NaN()}); err == nil {
				t.Errorf("\t%s\tTest 0:\tShould reject the submission.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould reject the submission.", success)
			}

			if st.QueryMempoolLength() != 0 {
				t.Errorf("\t%s\tTest 0:\tShould leave the mempool empty: got %d", failed, st.QueryMempoolLength())
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave the mempool empty.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen submitting a record with no fields.")
		{
			st := newTestState(t, 1, nil)

			if _, err := st.SubmitTransaction(map[string]any{}); err == nil {
				t.Errorf("\t%s\tTest 1:\tShould reject the submission.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould reject the submission.", success)
			}

			if st.QueryMempoolLength() != 0 {
				t.Errorf("\t%s\tTest 1:\tShould leave the mempool empty: got %d", failed, st.QueryMempoolLength())
			} else {
				t.Logf("\t%s\tTest 1:\tShould leave the mempool empty.", success)
			}
		}
	}
}

func Test_MineEmptyPool(t *testing.T) {
	t.Log("Given the need to reject mining with no pending transactions.")
	{
		t.Logf("\tTest 0:\tWhen mining with an empty mempool.")
		{
			st := newTestState(t, 1, nil)

			if _, err := st.MineNewBlock(context.Background()); !errors.Is(err, state.ErrNoTransactions) {
				t.Errorf("\t%s\tTest 0:\tShould get ErrNoTransactions: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould get ErrNoTransactions.", success)
			}

			if len(st.RetrieveBlocks()) != 1 {
				t.Errorf("\t%s\tTest 0:\tShould leave the chain at the genesis block.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave the chain at the genesis block.", success)
			}
		}
	}
}

func Test_SubmitDuringMining(t *testing.T) {
	t.Log("Given the need to defer transactions submitted while mining runs.")
	{
		t.Logf("\tTest 0:\tWhen a transaction arrives after the pool snapshot.")
		{
			// The event stream marks the moment the pool snapshot has been
			// taken and the nonce search begins. A transaction injected at
			// that point must land in the next block, not the current one.
			var st *state.State
			submitted := false
			ev := func(v string, args ...any) {
				if strings.Contains(v, "perform POW") && !submitted {
					submitted = true
					if _, err := st.SubmitTransaction(map[string]any{"from": "carol", "to": "dave", "amount": 1}); err != nil {
						t.Errorf("\t%s\tTest 0:\tShould be able to submit during mining: %v", failed, err)
					}
				}
			}

			st = newTestState(t, 1, ev)

			if _, err := st.SubmitTransaction(map[string]any{"from": "alice", "to": "bob", "amount": 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transaction: %v", failed, err)
			}

			block, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}

			if len(block.Trans) != 1 || block.Trans[0]["from"] != "alice" {
				t.Errorf("\t%s\tTest 0:\tShould only carry the snapshotted transaction: got %v", failed, block.Trans)
			} else {
				t.Logf("\t%s\tTest 0:\tShould only carry the snapshotted transaction.", success)
			}

			if st.QueryMempoolLength() != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould hold the late transaction for the next block: got %d", failed, st.QueryMempoolLength())
			}
			t.Logf("\t%s\tTest 0:\tShould hold the late transaction for the next block.", success)

			next, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine the next block: %v", failed, err)
			}

			if len(next.Trans) != 1 || next.Trans[0]["from"] != "carol" {
				t.Errorf("\t%s\tTest 0:\tShould carry the late transaction in the next block: got %v", failed, next.Trans)
			} else {
				t.Logf("\t%s\tTest 0:\tShould carry the late transaction in the next block.", success)
			}
		}
	}
}

func Test_MineCancelled(t *testing.T) {
	t.Log("Given the need to cancel a mining operation.")
	{
		t.Logf("\tTest 0:\tWhen mining with a cancelled context.")
		{
			st := newTestState(t, 6, nil)

			if _, err := st.SubmitTransaction(map[string]any{"from": "alice", "to": "bob", "amount": 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transaction: %v", failed, err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := st.MineNewBlock(ctx); !errors.Is(err, context.Canceled) {
				t.Errorf("\t%s\tTest 0:\tShould get a context cancelled error: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould get a context cancelled error.", success)
			}

			if len(st.RetrieveBlocks()) != 1 {
				t.Errorf("\t%s\tTest 0:\tShould not append a block.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould not append a block.", success)
			}

			if st.QueryMempoolLength() != 1 {
				t.Errorf("\t%s\tTest 0:\tShould keep the transaction in the mempool: got %d", failed, st.QueryMempoolLength())
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the transaction in the mempool.", success)
			}
		}
	}
}
