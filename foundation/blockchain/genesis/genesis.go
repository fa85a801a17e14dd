// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultDifficulty is the number of leading zero characters a block hash
// must carry when no genesis file overrides it.
const DefaultDifficulty = 4

// MaxDifficulty caps the difficulty a genesis file may declare. Beyond 16
// leading zero characters a single block would take years to mine.
const MaxDifficulty = 16

// Genesis represents the genesis file.
type Genesis struct {
	Date       time.Time `json:"date"`
	ChainName  string    `json:"chain_name"` // A human readable name for this running instance.
	Difficulty uint      `json:"difficulty"` // How difficult it needs to be to solve the work problem.
}

// =============================================================================

// New constructs a genesis value with the specified difficulty for chains
// that are not driven by a genesis file, such as tests.
func New(difficulty uint) Genesis {
	return Genesis{
		Date:       time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainName:  "powledger",
		Difficulty: difficulty,
	}
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if genesis.Difficulty == 0 {
		genesis.Difficulty = DefaultDifficulty
	}

	if genesis.Difficulty > MaxDifficulty {
		return Genesis{}, fmt.Errorf("difficulty %d out of range, must be at most %d", genesis.Difficulty, MaxDifficulty)
	}

	return genesis, nil
}
