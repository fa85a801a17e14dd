package worker_test

import (
	"testing"
	"time"

	"github.com/powledger/powledger/foundation/blockchain/genesis"
	"github.com/powledger/powledger/foundation/blockchain/state"
	"github.com/powledger/powledger/foundation/blockchain/storage/memory"
	"github.com/powledger/powledger/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_BackgroundMining(t *testing.T) {
	t.Log("Given the need to mine blocks on a background goroutine.")
	{
		t.Logf("\tTest 0:\tWhen signaling the worker with a pending transaction.")
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create memory storage: %v", failed, err)
			}

			st, err := state.New(state.Config{
				Genesis: genesis.New(1),
				Storage: storage,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to create the state: %v", failed, err)
			}
			defer st.Shutdown()

			worker.Run(st, func(v string, args ...any) {})

			if _, err := st.SubmitTransaction(map[string]any{"from": "alice", "to": "bob", "amount": 10}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit a transaction: %v", failed, err)
			}

			st.Worker.SignalStartMining()

			// The worker mines asynchronously, so poll for the new block.
			deadline := time.Now().Add(5 * time.Second)
			for len(st.RetrieveBlocks()) < 2 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest 0:\tShould mine a block before the deadline.", failed)
				}
				time.Sleep(10 * time.Millisecond)
			}
			t.Logf("\t%s\tTest 0:\tShould mine a block before the deadline.", success)

			latest := st.RetrieveLatestBlock()
			if latest.Header.Number != 1 {
				t.Errorf("\t%s\tTest 0:\tShould have block number 1: got %d", failed, latest.Header.Number)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have block number 1.", success)
			}

			if err := st.ValidateChain(); err != nil {
				t.Errorf("\t%s\tTest 0:\tShould have a valid chain: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould have a valid chain.", success)
			}
		}
	}
}
