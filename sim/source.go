package sim

import "math/rand"

// demandSource yields the two random streams one trial consumes: the
// per-day customer count and the per-customer requested quantity. The
// per-day transition in engine.go is written against this interface so
// the scalar and lane-parallel paths share it verbatim.
type demandSource interface {
	// NextTraffic returns how many customers arrive today.
	NextTraffic() int64
	// NextJobLot returns how many units one customer requests.
	NextJobLot() int64
}

// directSource draws each sample from the distribution at the point of
// use. This is the scalar reference mode.
type directSource struct {
	traffic *ZipfSampler
	jobLot  *ZipfSampler
	rng     *rand.Rand
}

func (s *directSource) NextTraffic() int64 { return s.traffic.Sample(s.rng) }
func (s *directSource) NextJobLot() int64  { return s.jobLot.Sample(s.rng) }

// tableSource reads samples out of batch-scoped precomputed tables,
// indexed by a per-lane xorshift stream. Lookup cost amortizes the
// distribution across thousands of lanes; the tables are shared
// read-only, the index state is lane-local.
type tableSource struct {
	traffic *SampleTable
	jobLot  *SampleTable
	state   laneRNG
}

func newTableSource(traffic, jobLot *SampleTable, seed int64) *tableSource {
	return &tableSource{traffic: traffic, jobLot: jobLot, state: newLaneRNG(seed)}
}

func (s *tableSource) NextTraffic() int64 { return s.traffic.At(uint64(s.state.next())) }
func (s *tableSource) NextJobLot() int64  { return s.jobLot.At(uint64(s.state.next())) }
