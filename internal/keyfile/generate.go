package keyfile

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

const (
	// RandomKeyRange is the minimum number of distinct values Random() samples from.
	RandomKeyRange = 199
	// BalancedKeyLimit is the upper bound of the keys generated by Balanced().
	BalancedKeyLimit = 1 << 10
)

// Random returns count distinct keys sampled from [1, max(count, RandomKeyRange)].
func Random(rnd *rand.Rand, count int) ([]int, error) {
	if count < 1 {
		return nil, errors.Errorf("the number of keys must be positive, got %d", count)
	}
	upper := RandomKeyRange
	if count > upper {
		upper = count
	}
	keys := rnd.Perm(upper)[:count]
	for i := range keys {
		keys[i]++
	}
	return keys, nil
}

// Balanced returns count keys from [1, BalancedKeyLimit] with the median first,
// so that the tree built from them starts at the middle. The keys may repeat.
func Balanced(rnd *rand.Rand, count int) ([]int, error) {
	if count < 1 {
		return nil, errors.Errorf("the number of keys must be positive, got %d", count)
	}
	keys := make([]int, count)
	for i := range keys {
		keys[i] = rnd.Intn(BalancedKeyLimit) + 1
	}
	return MedianFirst(keys), nil
}

// MedianFirst returns a copy of keys where the first occurrence of the median
// is moved to the front. The relative order of the rest is kept.
func MedianFirst(keys []int) []int {
	if len(keys) == 0 {
		return nil
	}
	sorted := make([]int, len(keys))
	copy(sorted, keys)
	sort.Ints(sorted)
	median := sorted[len(sorted)/2]
	result := make([]int, 0, len(keys))
	result = append(result, median)
	moved := false
	for _, key := range keys {
		if key == median && !moved {
			moved = true
			continue
		}
		result = append(result, key)
	}
	return result
}
