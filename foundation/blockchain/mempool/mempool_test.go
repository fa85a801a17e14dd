package mempool_test

import (
	"testing"

	"github.com/powledger/powledger/foundation/blockchain/database"
	"github.com/powledger/powledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTx(t *testing.T, from string, amount float64) database.TxRecord {
	t.Helper()

	tx, err := database.NewTxRecord(map[string]any{"from": from, "to": "pool", "amount": amount})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
	}

	return tx
}

func Test_Ordering(t *testing.T) {
	t.Log("Given the need to keep transactions in arrival order.")
	{
		t.Logf("\tTest 0:\tWhen adding three transactions.")
		{
			mp := mempool.New()

			froms := []string{"alice", "bob", "carol"}
			for i, from := range froms {
				if n := mp.Add(newTx(t, from, float64(i+1))); n != i+1 {
					t.Errorf("\t%s\tTest 0:\tShould report a count of %d after add: got %d", failed, i+1, n)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould report the running count after each add.", success)

			txs := mp.Snapshot()
			if len(txs) != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould snapshot 3 transactions: got %d", failed, len(txs))
			}

			for i, from := range froms {
				if txs[i]["from"] != from {
					t.Errorf("\t%s\tTest 0:\tShould keep arrival order at position %d: got %v", failed, i, txs[i]["from"])
				}
			}
			t.Logf("\t%s\tTest 0:\tShould keep arrival order.", success)
		}
	}
}

func Test_SnapshotIsolation(t *testing.T) {
	t.Log("Given the need for snapshots to be stable while the pool changes.")
	{
		t.Logf("\tTest 0:\tWhen adding a transaction after taking a snapshot.")
		{
			mp := mempool.New()
			mp.Add(newTx(t, "alice", 10))

			txs := mp.Snapshot()
			mp.Add(newTx(t, "bob", 5))

			if len(txs) != 1 {
				t.Errorf("\t%s\tTest 0:\tShould keep the snapshot at 1 transaction: got %d", failed, len(txs))
			} else {
				t.Logf("\t%s\tTest 0:\tShould keep the snapshot at 1 transaction.", success)
			}

			if mp.Count() != 2 {
				t.Errorf("\t%s\tTest 0:\tShould have 2 transactions in the pool: got %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 0:\tShould have 2 transactions in the pool.", success)
			}
		}
	}
}

func Test_Release(t *testing.T) {
	t.Log("Given the need to drop mined transactions from the pool.")
	{
		t.Logf("\tTest 0:\tWhen releasing the first transaction of two.")
		{
			mp := mempool.New()
			mp.Add(newTx(t, "alice", 10))
			mp.Add(newTx(t, "bob", 5))

			mp.Release(1)

			txs := mp.Snapshot()
			if len(txs) != 1 || txs[0]["from"] != "bob" {
				t.Errorf("\t%s\tTest 0:\tShould leave only the later transaction: got %v", failed, txs)
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave only the later transaction.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen releasing more than the pool holds.")
		{
			mp := mempool.New()
			mp.Add(newTx(t, "alice", 10))

			mp.Release(5)

			if mp.Count() != 0 {
				t.Errorf("\t%s\tTest 1:\tShould leave an empty pool: got %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 1:\tShould leave an empty pool.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen truncating the pool.")
		{
			mp := mempool.New()
			mp.Add(newTx(t, "alice", 10))
			mp.Add(newTx(t, "bob", 5))

			mp.Truncate()

			if mp.Count() != 0 {
				t.Errorf("\t%s\tTest 2:\tShould leave an empty pool: got %d", failed, mp.Count())
			} else {
				t.Logf("\t%s\tTest 2:\tShould leave an empty pool.", success)
			}

			if len(mp.Snapshot()) != 0 {
				t.Errorf("\t%s\tTest 2:\tShould snapshot no transactions.", failed)
			} else {
				t.Logf("\t%s\tTest 2:\tShould snapshot no transactions.", success)
			}
		}
	}
}
