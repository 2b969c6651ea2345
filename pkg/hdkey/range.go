package hdkey

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DeriveRange derives the count siblings first, first+1, ... of k
// concurrently. Results are in index order. The first failure or a
// cancelled ctx aborts the whole range.
func (k *ExtendedKey) DeriveRange(ctx context.Context, first, count uint32, hardened bool) ([]*ExtendedKey, error) {
	if count == 0 {
		return nil, nil
	}
	if first > MaxIndex || count-1 > MaxIndex-first {
		return nil, fmt.Errorf("%w: %d children from %d", ErrIndexOutOfRange, count, first)
	}

	out := make([]*ExtendedKey, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range count {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := ChildNumber{index: first + i, hardened: hardened}
			child, err := k.DeriveChild(c)
			if err != nil {
				return err
			}
			out[i] = child
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop stops scheduling on cancellation even when no goroutine
	// observed it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
