// Package cardset generates batches of distinct game card sets by rejection
// sampling: each game card draws K distinct calling cards at random and is
// redrawn whenever a previously accepted card already holds the same cards.
package cardset

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator produces batches of game card sets. It keeps a single random
// stream across calls, so regenerating after a rejected batch yields a new
// batch even when the generator is seeded.
type Generator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	workers int
	logger  *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator reproducible. A zero seed is treated as a
// request for a time-based seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed != 0 {
			g.rng = newRand(seed)
		}
	}
}

// WithRand injects the random stream directly.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithWorkers sets how many game cards are sampled concurrently. Values
// below 2 keep the sequential path.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithLogger sets the logger used to report duplicate rejections.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator returns a Generator. Without WithSeed or WithRand it draws
// from a time-seeded stream.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		workers: 1,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = newRand(timeSeed())
	}
	return g
}

// Generate returns exactly p.GameCards sets with pairwise distinct
// signatures, or an error. Infeasible requests fail with a CapacityError
// before any sampling. Cancelling ctx stops sampling between attempts; no
// partial batch is ever returned.
func (g *Generator) Generate(ctx context.Context, p Params) (Batch, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := CheckCapacity(p); err != nil {
		return nil, err
	}

	// mu serializes use of g.rng; the signature index has its own lock.
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.workers > 1 && p.GameCards > 1 {
		return g.generateParallel(ctx, p, g.rng.Int63())
	}
	return g.generateSequential(ctx, p)
}

func (g *Generator) generateSequential(ctx context.Context, p Params) (Batch, error) {
	idx := newSignatureIndex(p.GameCards)
	pool := make([]int, p.CallingCards)
	batch := make(Batch, 0, p.GameCards)
	for slot := 0; slot < p.GameCards; slot++ {
		set, err := g.fillSlot(ctx, slot, g.rng, pool, p, idx)
		if err != nil {
			return nil, err
		}
		batch = append(batch, set)
	}
	return batch, nil
}

// generateParallel samples each slot on its own stream derived from base.
// Only the signature index is shared. When two slots collide, whichever
// registers its signature first keeps it and the other redraws.
func (g *Generator) generateParallel(ctx context.Context, p Params, base int64) (Batch, error) {
	idx := newSignatureIndex(p.GameCards)
	batch := make(Batch, p.GameCards)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for slot := 0; slot < p.GameCards; slot++ {
		eg.Go(func() error {
			rng := newRand(deriveSeed(base, uint64(slot)))
			pool := make([]int, p.CallingCards)
			set, err := g.fillSlot(egCtx, slot, rng, pool, p, idx)
			if err != nil {
				return err
			}
			batch[slot] = set
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

func (g *Generator) fillSlot(ctx context.Context, slot int, rng *rand.Rand, pool []int, p Params, idx *signatureIndex) (Set, error) {
	k := p.PerCard()
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate game card %d: %w", slot+1, err)
		}
		set := sample(rng, p.CallingCards, k, pool)
		if idx.add(set.Signature()) {
			return set, nil
		}
		g.logger.Debug("game card is a duplicate, creating a new one",
			zap.Int("card", slot+1),
			zap.Int("attempt", attempt))
	}
}

// signatureIndex records the signatures accepted in the current batch.
type signatureIndex struct {
	mu   sync.Mutex
	seen map[Signature]struct{}
}

func newSignatureIndex(size int) *signatureIndex {
	return &signatureIndex{seen: make(map[Signature]struct{}, size)}
}

// add records sig and reports whether it was new.
func (x *signatureIndex) add(sig Signature) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.seen[sig]; ok {
		return false
	}
	x.seen[sig] = struct{}{}
	return true
}
