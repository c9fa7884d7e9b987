package vanity

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// ss58Prefix is the fixed checksum domain separator from the SS58 spec.
var ss58Prefix = []byte("SS58PRE")

// SS58Encode encodes a public key as an SS58 address for the given network.
//
// Layout: base58(network || pubkey || checksum[:2]) where the checksum is
// BLAKE2b-512 over "SS58PRE" || network || pubkey.
func SS58Encode(network byte, pub []byte) string {
	data := make([]byte, 0, 1+len(pub)+2)
	data = append(data, network)
	data = append(data, pub...)

	h := make([]byte, 0, len(ss58Prefix)+len(data))
	h = append(h, ss58Prefix...)
	h = append(h, data...)
	sum := blake2b.Sum512(h)

	data = append(data, sum[0], sum[1])

	return base58.Encode(data)
}
