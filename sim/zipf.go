package sim

import (
	"math"
	"math/rand"
	"sort"
)

// ZipfSampler draws discrete power-law variates in [1, n]: the
// probability of value k is proportional to k^-shape. Sampling is
// inverse-CDF via binary search over a cumulative table built once at
// construction, so a draw costs O(log n) and never fails.
//
// Thread-safety: the sampler itself is immutable after construction and
// safe for concurrent use; callers supply their own *rand.Rand.
type ZipfSampler struct {
	n     int
	shape float64
	cdf   []float64
}

// NewZipfSampler builds a sampler over [1, n] with the given shape
// exponent. Returns a ConfigError when n == 0 or shape <= 0.
func NewZipfSampler(n int, shape float64) (*ZipfSampler, error) {
	if n == 0 {
		return nil, &ConfigError{Field: "ZipfElements", Reason: "must be > 0"}
	}
	if shape <= 0 {
		return nil, &ConfigError{Field: "ZipfShape", Reason: "must be > 0"}
	}

	cdf := make([]float64, n)
	total := 0.0
	for k := 1; k <= n; k++ {
		total += math.Pow(float64(k), -shape)
		cdf[k-1] = total
	}
	for i := range cdf {
		cdf[i] /= total
	}
	// Guard the last bin against rounding so every u in [0, 1) lands.
	cdf[n-1] = 1.0

	return &ZipfSampler{n: n, shape: shape, cdf: cdf}, nil
}

// Sample returns a variate in [1, n].
func (z *ZipfSampler) Sample(rng *rand.Rand) int64 {
	u := rng.Float64()
	idx := sort.SearchFloat64s(z.cdf, u)
	if idx >= z.n {
		idx = z.n - 1
	}
	return int64(idx + 1)
}

// Shape returns the exponent the sampler was built with.
func (z *ZipfSampler) Shape() float64 { return z.shape }
