package journal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

const acceptedKey = "accepted"

// Options configures a Journal.
type Options struct {
	// Codec encodes records. Default: DefaultCodec.
	Codec Codec

	// Compressor compresses encoded records. Default: Nop.
	Compressor Compressor

	// KeyPrefix is prepended to improvement record keys.
	// Default: "improvement-".
	KeyPrefix string
}

// Journal records committed improvements of type T in a Store.
//
// Append is called from the arbiter only, so records are written in commit
// order; Replay returns them in the same order.
type Journal[T any] struct {
	store  Store
	codec  Codec
	comp   Compressor
	prefix string
	seq    atomic.Uint64
}

// New creates a Journal writing to store.
func New[T any](store Store, optFns ...func(*Options)) (*Journal[T], error) {
	if store == nil {
		return nil, fmt.Errorf("journal: store is nil")
	}

	opts := Options{
		Codec:      DefaultCodec,
		Compressor: Nop{},
		KeyPrefix:  "improvement-",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Journal[T]{
		store:  store,
		codec:  opts.Codec,
		comp:   opts.Compressor,
		prefix: opts.KeyPrefix,
	}, nil
}

// Append records one committed improvement.
func (j *Journal[T]) Append(ctx context.Context, v T) error {
	seq := j.seq.Add(1)
	return j.put(ctx, fmt.Sprintf("%s%08d", j.prefix, seq), v)
}

// Accept records the accepted candidate under a well-known key.
func (j *Journal[T]) Accept(ctx context.Context, v T) error {
	return j.put(ctx, acceptedKey, v)
}

// Replay returns all recorded improvements in commit order.
func (j *Journal[T]) Replay(ctx context.Context) ([]T, error) {
	names, err := j.store.List(ctx, j.prefix)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(names))
	for _, name := range names {
		var v T
		if err := j.get(ctx, name, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Accepted returns the recorded accepted candidate, if any.
func (j *Journal[T]) Accepted(ctx context.Context) (T, bool, error) {
	var v T
	err := j.get(ctx, acceptedKey, &v)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

func (j *Journal[T]) put(ctx context.Context, name string, v T) error {
	encoded, err := j.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", name, err)
	}

	data, err := j.comp.Compress(encoded)
	if err != nil {
		return fmt.Errorf("journal: compress %s: %w", name, err)
	}

	if err := j.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("journal: put %s: %w", name, err)
	}
	return nil
}

func (j *Journal[T]) get(ctx context.Context, name string, v *T) error {
	data, err := j.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("journal: get %s: %w", name, err)
	}

	encoded, err := j.comp.Decompress(data)
	if err != nil {
		return fmt.Errorf("journal: decompress %s: %w", name, err)
	}

	if err := j.codec.Unmarshal(encoded, v); err != nil {
		return fmt.Errorf("journal: decode %s: %w", name, err)
	}
	return nil
}
