package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Address string `json:"address"`
	Score   int    `json:"score"`
}

func TestJournal_AppendReplayOrder(t *testing.T) {
	ctx := context.Background()
	j, err := New[record](NewMemoryStore())
	require.NoError(t, err)

	want := []record{
		{Address: "5a", Score: 1},
		{Address: "5ab", Score: 2},
		{Address: "5abc", Score: 3},
	}
	for _, r := range want {
		require.NoError(t, j.Append(ctx, r))
	}

	got, err := j.Replay(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJournal_Accepted(t *testing.T) {
	ctx := context.Background()
	j, err := New[record](NewMemoryStore())
	require.NoError(t, err)

	_, ok, err := j.Accepted(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	winner := record{Address: "5abcdef", Score: 7}
	require.NoError(t, j.Accept(ctx, winner))

	got, ok, err := j.Accepted(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, winner, got)
}

func TestJournal_CompressedRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, comp := range []Compressor{Zstd{}, LZ4{}} {
		t.Run(comp.Name(), func(t *testing.T) {
			store := NewMemoryStore()
			j, err := New[record](store, func(o *Options) {
				o.Compressor = comp
			})
			require.NoError(t, err)

			want := record{Address: "5compressed", Score: 9}
			require.NoError(t, j.Append(ctx, want))

			got, err := j.Replay(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, want, got[0])

			// What landed in the store is not the plain encoding.
			names, err := store.List(ctx, "improvement-")
			require.NoError(t, err)
			require.Len(t, names, 1)
			raw, err := store.Get(ctx, names[0])
			require.NoError(t, err)
			assert.NotContains(t, string(raw), "5compressed")
		})
	}
}

func TestJournal_CustomPrefixAndCodec(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	codec, ok := CodecByName("json")
	require.True(t, ok)

	j, err := New[record](store, func(o *Options) {
		o.KeyPrefix = "run42-"
		o.Codec = codec
	})
	require.NoError(t, err)

	require.NoError(t, j.Append(ctx, record{Address: "5x"}))

	names, err := store.List(ctx, "run42-")
	require.NoError(t, err)
	assert.Equal(t, []string{"run42-00000001"}, names)
}

func TestNew_NilStore(t *testing.T) {
	_, err := New[record](nil)
	require.Error(t, err)
}

func TestCompressorByName(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4"} {
		c, ok := CompressorByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := CompressorByName("snappy")
	assert.False(t, ok)
}
