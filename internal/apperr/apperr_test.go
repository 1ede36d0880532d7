package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatchesSentinel(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
		kind     Kind
	}{
		{Input("config", "rows must be at least 2, got %d", 1), ErrInput, KindInput},
		{Capacity("generate", "too many game cards", 1, 2), ErrCapacity, KindCapacity},
		{AssetCount("catalog", "calling card count", 54, 53), ErrAssetCountMismatch, KindAssetCount},
		{Composition("grid", "size mismatch"), ErrComposition, KindComposition},
		{IO("write", os.ErrPermission), ErrIO, KindIO},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.sentinel)
			assert.Equal(t, tc.kind, KindOf(tc.err))

			wrapped := fmt.Errorf("outer: %w", tc.err)
			assert.ErrorIs(t, wrapped, tc.sentinel)
			assert.Equal(t, tc.kind, KindOf(wrapped))
		})
	}
}

func TestErrorMessageCarriesCounts(t *testing.T) {
	err := AssetCount("catalog", "calling card images", 54, 53)
	assert.Equal(t, "AssetCountMismatch in catalog: calling card images (expected 54, got 53)", err.Error())
}

func TestIOUnwrapsCause(t *testing.T) {
	err := IO("read catalog", os.ErrNotExist)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorIs(t, err, ErrIO)
	assert.False(t, errors.Is(err, ErrInput))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
