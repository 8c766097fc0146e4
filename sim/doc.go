// Package sim provides the core Monte Carlo engine for restocksim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - engine.go: the per-day state transition (truck arrival, customer
//     demand, reorder decision) and the 365-day trial loop
//   - batch.go: batch execution, scalar and lane-parallel, and the
//     reduction of per-trial counters into aggregate statistics
//   - zipf.go: the discrete power-law sampler behind demand generation
//
// # Architecture
//
// A trial is one simulated year of a periodic-review inventory policy
// under a lost-sale model: unmet demand is dropped, never backordered.
// Both execution paths share one per-day transition; they differ only in
// how random samples are sourced (direct draws from a ZipfSampler versus
// lookups into a batch-scoped SampleTable) and in where counters land
// (a local accumulator versus a lane-indexed output slot).
//
// Randomness is derived from a BatchKey (rng.go): each trial gets an
// isolated, deterministic seed, so the scalar and parallel paths can be
// compared bit-for-bit under the same key and sample mode.
package sim
