package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/powledger/powledger/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Load(t *testing.T) {
	t.Log("Given the need to load a genesis file.")
	{
		t.Logf("\tTest 0:\tWhen loading a file with an explicit difficulty.")
		{
			path := filepath.Join(t.TempDir(), "genesis.json")
			doc := `{"date": "2023-01-01T00:00:00Z", "chain_name": "test-chain", "difficulty": 2}`
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the file: %v", failed, err)
			}

			gen, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the file.", success)

			if gen.ChainName != "test-chain" || gen.Difficulty != 2 {
				t.Errorf("\t%s\tTest 0:\tShould carry the file values: got %+v", failed, gen)
			} else {
				t.Logf("\t%s\tTest 0:\tShould carry the file values.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen loading a file without a difficulty.")
		{
			path := filepath.Join(t.TempDir(), "genesis.json")
			doc := `{"date": "2023-01-01T00:00:00Z", "chain_name": "test-chain"}`
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the file: %v", failed, err)
			}

			gen, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to load the file: %v", failed, err)
			}

			if gen.Difficulty != genesis.DefaultDifficulty {
				t.Errorf("\t%s\tTest 1:\tShould default the difficulty to %d: got %d", failed, genesis.DefaultDifficulty, gen.Difficulty)
			} else {
				t.Logf("\t%s\tTest 1:\tShould default the difficulty to %d.", success, genesis.DefaultDifficulty)
			}
		}

		t.Logf("\tTest 2:\tWhen loading a file with an out-of-range difficulty.")
		{
			path := filepath.Join(t.TempDir(), "genesis.json")
			doc := `{"date": "2023-01-01T00:00:00Z", "chain_name": "test-chain", "difficulty": 20}`
			if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Errorf("\t%s\tTest 2:\tShould reject a difficulty above %d.", failed, genesis.MaxDifficulty)
			} else {
				t.Logf("\t%s\tTest 2:\tShould reject a difficulty above %d.", success, genesis.MaxDifficulty)
			}
		}

		t.Logf("\tTest 3:\tWhen the file does not exist.")
		{
			if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Errorf("\t%s\tTest 3:\tShould get an error for a missing file.", failed)
			} else {
				t.Logf("\t%s\tTest 3:\tShould get an error for a missing file.", success)
			}
		}
	}
}
