package vanity

import (
	"fmt"
	"strings"
)

// base58Alphabet is the character set SS58 addresses are drawn from.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Matcher ranks candidates by how well their address matches a desired
// prefix.
//
// Ranking stages, each short-circuiting and falling through only on a tie:
//
//  1. matching prefix length (case-insensitive unless CaseSensitive is set)
//  2. count of positionally identical characters (always case-exact)
//  3. tie: the current best wins, so equally-ranked candidates never cause a
//     replacement.
type Matcher struct {
	// Prefix is the desired address prefix.
	Prefix string

	// CaseSensitive makes the primary criterion case-exact.
	CaseSensitive bool
}

// Validate reports whether the prefix can ever be matched by an SS58
// address.
func (m Matcher) Validate() error {
	if m.Prefix == "" {
		return fmt.Errorf("vanity: prefix is empty")
	}
	for i := 0; i < len(m.Prefix); i++ {
		if !strings.ContainsRune(base58Alphabet, rune(m.Prefix[i])) {
			return fmt.Errorf("vanity: prefix character %q is not in the base58 alphabet", m.Prefix[i])
		}
	}
	return nil
}

// IsBetter reports whether c ranks strictly better than current.
// current is nil while no best exists, in which case any candidate is
// better. Pure and tie-stable; satisfies the engine.Comparator contract.
func (m Matcher) IsBetter(c Candidate, current *Candidate) bool {
	if current == nil {
		return true
	}
	return m.better(c.Address, current.Address)
}

// IsAcceptable reports whether the address carries the full prefix,
// case-exact. Satisfies the engine.Acceptor contract.
func (m Matcher) IsAcceptable(c Candidate) bool {
	return strings.HasPrefix(c.Address, m.Prefix)
}

func (m Matcher) better(newAddr, oldAddr string) bool {
	switch nl, ol := m.prefixMatchLen(newAddr), m.prefixMatchLen(oldAddr); {
	case nl > ol:
		return true
	case nl < ol:
		return false
	}

	switch nc, oc := m.matchCount(newAddr), m.matchCount(oldAddr); {
	case nc > oc:
		return true
	case nc < oc:
		return false
	}

	return false
}

// prefixMatchLen is the primary criterion: the length of the common prefix
// between the desired prefix and the address.
func (m Matcher) prefixMatchLen(addr string) int {
	want := m.Prefix
	if !m.CaseSensitive {
		want = strings.ToLower(want)
		addr = strings.ToLower(addr)
	}

	n := 0
	for n < len(want) && n < len(addr) && want[n] == addr[n] {
		n++
	}
	return n
}

// matchCount is the tie-break criterion: positionally identical characters
// across the compared length, case-exact.
func (m Matcher) matchCount(addr string) int {
	count := 0
	for i := 0; i < len(m.Prefix) && i < len(addr); i++ {
		if m.Prefix[i] == addr[i] {
			count++
		}
	}
	return count
}
