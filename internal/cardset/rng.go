package cardset

import (
	"math/rand"
	"time"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// timeSeed is used when no seed was configured.
func timeSeed() int64 {
	return time.Now().UnixNano()
}

// deriveSeed mixes a parent seed and a slot number into an independent seed
// using the SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// sample draws k distinct values from [1, n] in random order using a partial
// Fisher–Yates shuffle. pool is scratch space of length n and is overwritten.
func sample(rng *rand.Rand, n, k int, pool []int) Set {
	for i := range pool {
		pool[i] = i + 1
	}
	out := make(Set, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
		out[i] = pool[i]
	}
	return out
}
