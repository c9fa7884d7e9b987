package vanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateWithAddress(addr string) Candidate {
	return Candidate{Address: addr}
}

func TestMatcher_Validate(t *testing.T) {
	assert.Error(t, Matcher{Prefix: ""}.Validate())
	assert.Error(t, Matcher{Prefix: "a0b"}.Validate()) // '0' is not base58
	assert.Error(t, Matcher{Prefix: "Ol"}.Validate())  // neither are 'O' and 'l'
	assert.NoError(t, Matcher{Prefix: "5ab"}.Validate())
}

func TestMatcher_FirstCandidateAlwaysWins(t *testing.T) {
	m := Matcher{Prefix: "ab"}
	assert.True(t, m.IsBetter(candidateWithAddress("zzz"), nil))
}

func TestMatcher_Stages(t *testing.T) {
	m := Matcher{Prefix: "ab"}

	tests := []struct {
		name     string
		new, old string
		better   bool
	}{
		{"longer prefix wins", "ab1", "ax1", true},
		{"shorter prefix loses", "ax1", "ab1", false},
		{"equal prefix equal count ties to current", "abz", "ab1", false},
		{"no match against partial match", "xy", "ax", false},
		{"partial match against no match", "ax", "xy", true},
		{"identical rank never replaces", "ab1", "ab1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.IsBetter(candidateWithAddress(tt.new), &Candidate{Address: tt.old})
			assert.Equal(t, tt.better, got)
		})
	}
}

func TestMatcher_CaseInsensitivePrimaryCaseExactTieBreak(t *testing.T) {
	m := Matcher{Prefix: "ab"}

	// Both match length 2 case-insensitively, but "ab1" matches both
	// characters literally while "AB1" matches none.
	assert.True(t, m.IsBetter(candidateWithAddress("ab1"), &Candidate{Address: "AB1"}))
	assert.False(t, m.IsBetter(candidateWithAddress("AB1"), &Candidate{Address: "ab1"}))
}

func TestMatcher_CaseSensitive(t *testing.T) {
	m := Matcher{Prefix: "ab", CaseSensitive: true}

	// "AB1" matches nothing under case-sensitive comparison.
	assert.True(t, m.IsBetter(candidateWithAddress("a11"), &Candidate{Address: "AB1"}))
}

// TestMatcher_CommitSequence walks the engine's admission rule over a fixed
// candidate stream and checks where the best lands.
func TestMatcher_CommitSequence(t *testing.T) {
	m := Matcher{Prefix: "ab"}

	var best *Candidate
	for _, addr := range []string{"xy", "ax", "ab1", "abz"} {
		c := candidateWithAddress(addr)
		if m.IsBetter(c, best) {
			best = &c
		}
	}

	require.NotNil(t, best)
	// "abz" ties with the already-committed "ab1" and must not displace it.
	assert.Equal(t, "ab1", best.Address)
	assert.Equal(t, 2, m.prefixMatchLen(best.Address))
}

func TestMatcher_Acceptance(t *testing.T) {
	m := Matcher{Prefix: "ab"}

	assert.True(t, m.IsAcceptable(candidateWithAddress("abcdef")))
	assert.False(t, m.IsAcceptable(candidateWithAddress("aBcdef")), "acceptance is case-exact")
	assert.False(t, m.IsAcceptable(candidateWithAddress("xabc")))
}
