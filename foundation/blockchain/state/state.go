// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/powledger/powledger/foundation/blockchain/database"
	"github.com/powledger/powledger/foundation/blockchain/genesis"
	"github.com/powledger/powledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events occur in the
// processing of mining and persisting blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Serializer
	EvHandler EventHandler
}

// State manages the ledger: the chain of blocks, the pool of pending
// transactions, and the mining and validation operations over them. It is
// an explicitly owned value; every operation goes through a *State and
// there is no process-wide instance.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	evHandler EventHandler

	mempool *mempool.Mempool
	db      *database.Database

	Worker Worker
}

// New constructs a new ledger state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Access the database for the chain of blocks. This seeds the genesis
	// block and re-validates anything already in storage.
	db, err := database.New(cfg.Genesis, cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:   cfg.Genesis,
		evHandler: ev,
		mempool:   mempool.New(),
		db:        db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {

	// Make sure the database is properly closed.
	defer func() {
		s.db.Close()
	}()

	// Stop all mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
