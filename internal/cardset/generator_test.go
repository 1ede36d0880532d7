package cardset

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/arcanaland/loteria/internal/apperr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingSource counts how many random values were drawn.
type countingSource struct {
	rand.Source
	calls int
}

func (s *countingSource) Int63() int64 {
	s.calls++
	return s.Source.Int63()
}

func requireValidBatch(t *testing.T, batch Batch, p Params) {
	t.Helper()
	require.Len(t, batch, p.GameCards)
	require.True(t, batch.Distinct(), "batch holds duplicate game cards")
	for n, set := range batch {
		require.Len(t, set, p.PerCard(), "game card %d", n+1)
		seen := make(map[int]bool, len(set))
		for _, v := range set {
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, p.CallingCards)
			require.False(t, seen[v], "game card %d repeats calling card %d", n+1, v)
			seen[v] = true
		}
	}
}

func TestGenerateSingleFullSet(t *testing.T) {
	p := Params{CallingCards: 4, GameCards: 1, Columns: 2, Rows: 2}
	batch, err := NewGenerator(WithSeed(7)).Generate(context.Background(), p)
	require.NoError(t, err)
	requireValidBatch(t, batch, p)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, []int(batch[0]))
}

func TestGenerateTypicalBatch(t *testing.T) {
	p := Params{CallingCards: 54, GameCards: 30, Columns: 4, Rows: 4}
	batch, err := NewGenerator(WithSeed(2024)).Generate(context.Background(), p)
	require.NoError(t, err)
	requireValidBatch(t, batch, p)
	assert.Len(t, batch.Flatten(), 480)
}

func TestGenerateExhaustsCapacity(t *testing.T) {
	// C(5,4) = 5: every subset must appear exactly once.
	p := Params{CallingCards: 5, GameCards: 5, Columns: 2, Rows: 2}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	batch, err := NewGenerator(WithSeed(3)).Generate(ctx, p)
	require.NoError(t, err)
	requireValidBatch(t, batch, p)
}

func TestGenerateTooFewCallingCards(t *testing.T) {
	src := &countingSource{Source: rand.NewSource(1)}
	g := NewGenerator(WithRand(rand.New(src)))

	_, err := g.Generate(context.Background(), Params{CallingCards: 3, GameCards: 1, Columns: 2, Rows: 2})
	require.ErrorIs(t, err, apperr.ErrCapacity)
	assert.Zero(t, src.calls, "no sampling may happen for an infeasible request")
}

func TestGenerateTooManyGameCards(t *testing.T) {
	src := &countingSource{Source: rand.NewSource(1)}
	g := NewGenerator(WithRand(rand.New(src)))

	// C(5,4) = 5 < 6
	_, err := g.Generate(context.Background(), Params{CallingCards: 5, GameCards: 6, Columns: 2, Rows: 2})
	require.ErrorIs(t, err, apperr.ErrCapacity)
	assert.Zero(t, src.calls)

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 5, e.Expected)
	assert.Equal(t, 6, e.Actual)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	g := NewGenerator(WithSeed(1))
	cases := map[string]Params{
		"zero calling cards": {CallingCards: 0, GameCards: 1, Columns: 2, Rows: 2},
		"zero game cards":    {CallingCards: 10, GameCards: 0, Columns: 2, Rows: 2},
		"one column":         {CallingCards: 10, GameCards: 1, Columns: 1, Rows: 2},
		"one row":            {CallingCards: 10, GameCards: 1, Columns: 2, Rows: 1},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := g.Generate(context.Background(), p)
			assert.ErrorIs(t, err, apperr.ErrInput)
		})
	}
}

func TestGenerateSeedIsReproducible(t *testing.T) {
	p := Params{CallingCards: 20, GameCards: 12, Columns: 2, Rows: 3}
	first, err := NewGenerator(WithSeed(99)).Generate(context.Background(), p)
	require.NoError(t, err)
	second, err := NewGenerator(WithSeed(99)).Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRegenerateDiffers(t *testing.T) {
	p := Params{CallingCards: 54, GameCards: 10, Columns: 4, Rows: 4}
	g := NewGenerator(WithSeed(5))
	first, err := g.Generate(context.Background(), p)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), p)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateKeepsSamplingOrder(t *testing.T) {
	p := Params{CallingCards: 54, GameCards: 20, Columns: 4, Rows: 4}
	batch, err := NewGenerator(WithSeed(11)).Generate(context.Background(), p)
	require.NoError(t, err)

	sortedSets := 0
	for _, set := range batch {
		if isSorted(set) {
			sortedSets++
		}
	}
	assert.Less(t, sortedSets, len(batch), "sets must keep their random order")
}

func isSorted(s Set) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

func TestGenerateParallel(t *testing.T) {
	p := Params{CallingCards: 10, GameCards: 150, Columns: 2, Rows: 2}
	g := NewGenerator(WithSeed(42), WithWorkers(8), WithLogger(zap.NewNop()))
	batch, err := g.Generate(context.Background(), p)
	require.NoError(t, err)
	requireValidBatch(t, batch, p)
}

func TestGenerateParallelNoCollisionsIsReproducible(t *testing.T) {
	// With 54 choose 16 combinations a collision is practically impossible,
	// so the per-slot streams fully decide the batch.
	p := Params{CallingCards: 54, GameCards: 30, Columns: 4, Rows: 4}
	first, err := NewGenerator(WithSeed(8), WithWorkers(4)).Generate(context.Background(), p)
	require.NoError(t, err)
	second, err := NewGenerator(WithSeed(8), WithWorkers(4)).Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		batch, err := NewGenerator(WithSeed(1), WithWorkers(workers)).
			Generate(ctx, Params{CallingCards: 54, GameCards: 10, Columns: 4, Rows: 4})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, batch)
	}
}

func TestCapacity(t *testing.T) {
	assert.Equal(t, int64(1), Capacity(4, 4).Int64())
	assert.Equal(t, int64(5), Capacity(5, 4).Int64())
	assert.Equal(t, int64(0), Capacity(3, 4).Int64())
	assert.Equal(t, "21094923659355", Capacity(54, 16).String())
}
