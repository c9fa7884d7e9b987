// Package vanity supplies the address-search domain glue for the engine:
// deterministic keypair derivation from a search index, SS58 address
// encoding, and the prefix-match comparator and acceptance policy.
//
// Key derivation is intentionally simple: the seed is a BLAKE2b hash of a
// per-run salt and the index, and the keypair is ed25519. The search protocol
// does not depend on the key scheme; swap in another Deriver-shaped generator
// for a different chain or curve.
package vanity
