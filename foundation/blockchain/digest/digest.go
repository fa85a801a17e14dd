// Package digest provides the hashing support for the ledger. Every hash in
// the system is a sha256 digest rendered as a 64 character lowercase hex
// string so difficulty can be expressed as a required prefix of '0' runes.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ZeroHash represents a hash code of all zeros. It is the sentinel previous
// hash carried by the genesis block and is never the hash of any content.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLen is the length of the hex encoded form of any hash.
const HashLen = 64

// Hash returns a unique string for the value. The value is serialized with
// encoding/json, which writes struct fields in declaration order and map
// keys sorted, so the representation is stable across calls.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
