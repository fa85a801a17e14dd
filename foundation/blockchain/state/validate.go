package state

// ValidateChain verifies the integrity of the full chain. A nil return means
// every block's stored hash matches its recomputed content hash and every
// block correctly references its predecessor. On the first violation a
// *database.ChainError is returned identifying the failing block number.
// The check never mutates state; reacting to an invalid chain is the
// caller's responsibility.
func (s *State) ValidateChain() error {
	s.evHandler("state: ValidateChain: started")
	defer s.evHandler("state: ValidateChain: completed")

	return s.db.ValidateChain(s.evHandler)
}
