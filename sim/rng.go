package sim

import (
	"fmt"
	"hash/fnv"
)

// === BatchKey ===

// BatchKey uniquely identifies a reproducible batch run. Two batches with
// the same BatchKey, identical configuration, and the same sample mode
// MUST produce bit-for-bit identical aggregate counters, whichever
// execution path (scalar or lane-parallel) runs them.
type BatchKey int64

// NewBatchKey creates a BatchKey from a seed value.
func NewBatchKey(seed int64) BatchKey {
	return BatchKey(seed)
}

// TrialSeed derives the isolated seed for trial i. Hash-based derivation
// keeps trials independent of each other and of reduction order:
// trialSeed = key XOR fnv1a64("trial_<i>").
func (k BatchKey) TrialSeed(i int) int64 {
	return int64(k) ^ fnv1a64(fmt.Sprintf("trial_%d", i))
}

// TableSeed derives the seed that fills the named precomputed sample
// table ("job_lot" or "traffic").
func (k BatchKey) TableSeed(name string) int64 {
	return int64(k) ^ fnv1a64("table_"+name)
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === laneRNG ===

// laneRNG is the per-lane uniform generator used in table-sampling mode.
// It is a 32-bit xorshift: tiny state, no allocation, and cheap enough
// to run one instance per lane. It only ever produces table indices, so
// statistical quality beyond "uniform and uncorrelated across lanes" is
// not required.
type laneRNG uint32

// newLaneRNG folds a 64-bit trial seed into a nonzero 32-bit state.
// Xorshift has a fixed point at zero.
func newLaneRNG(seed int64) laneRNG {
	s := uint32(seed) ^ uint32(uint64(seed)>>32)
	if s == 0 {
		s = 0x9e3779b9
	}
	return laneRNG(s)
}

// next advances the state and returns the new value.
func (r *laneRNG) next() uint32 {
	x := uint32(*r)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	*r = laneRNG(x)
	return x
}
