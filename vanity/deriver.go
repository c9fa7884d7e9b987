package vanity

import (
	"crypto/ed25519"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// NetworkSubstrate is the SS58 network identifier for generic Substrate
// addresses (they start with '5').
const NetworkSubstrate = 42

// Deriver deterministically maps search indexes to keypairs.
//
// seed(index) = BLAKE2b-256(salt || index), so distinct runs with distinct
// salts explore disjoint key regions while every worker stays pure and
// synchronization-free.
type Deriver struct {
	salt    [32]byte
	network byte
}

// NewDeriver creates a Deriver for the given SS58 network.
//
// salt fixes the explored key region; pass nil to draw a fresh random salt
// for this run.
func NewDeriver(network byte, salt []byte) (*Deriver, error) {
	d := &Deriver{network: network}

	if salt == nil {
		if _, err := crand.Read(d.salt[:]); err != nil {
			return nil, fmt.Errorf("vanity: read salt: %w", err)
		}
		return d, nil
	}

	if len(salt) != len(d.salt) {
		return nil, fmt.Errorf("vanity: salt must be %d bytes, got %d", len(d.salt), len(salt))
	}
	copy(d.salt[:], salt)

	return d, nil
}

// Salt returns the salt in use, so a run's key region can be recorded and
// revisited.
func (d *Deriver) Salt() []byte {
	out := make([]byte, len(d.salt))
	copy(out, d.salt[:])
	return out
}

// Generate derives the candidate for index. Deterministic given the
// deriver's salt.
func (d *Deriver) Generate(index uint64) (Candidate, error) {
	var buf [40]byte
	copy(buf[:32], d.salt[:])
	binary.LittleEndian.PutUint64(buf[32:], index)

	seed := blake2b.Sum256(buf[:])

	priv := ed25519.NewKeyFromSeed(seed[:])
	pub := priv.Public().(ed25519.PublicKey)

	return Candidate{
		Address: SS58Encode(d.network, pub),
		Public:  pub,
		Seed:    seed,
		Index:   index,
	}, nil
}
