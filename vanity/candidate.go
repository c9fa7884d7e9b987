package vanity

import (
	"encoding/hex"
	"fmt"
)

// Candidate is one derived keypair and its address, carried through the
// engine unexamined. Immutable after creation.
type Candidate struct {
	// Address is the SS58-encoded public key.
	Address string

	// Public is the ed25519 public key.
	Public []byte

	// Seed is the private key seed. Whoever holds it controls the address.
	Seed [32]byte

	// Index is the search index the candidate was derived from.
	Index uint64
}

// String renders the candidate as "address -> hex seed".
func (c Candidate) String() string {
	return fmt.Sprintf("%s -> %s", c.Address, hex.EncodeToString(c.Seed[:]))
}
