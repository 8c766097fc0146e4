package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// BatchOptions parameterizes SimulateBatch.
//
// A nil Accelerator selects the scalar path: a sequential loop over
// trials on the calling goroutine, used as the oracle when testing the
// parallel path and as the fallback when the backend cannot be acquired.
// A non-nil Accelerator runs one full independent 365-day trial per lane
// task (trials are never split into day-chunks; chunk-splitting would
// understate trial-to-trial variance).
type BatchOptions struct {
	StartingQuantity int64
	Trials           int

	// Key seeds every random stream in the batch. The zero key selects
	// fresh entropy; any other key makes the batch reproducible.
	Key BatchKey

	// Accelerator, when non-nil, runs the batch on the lane pool.
	Accelerator *Accelerator

	// UseSampleTable forces the scalar path to source samples from
	// precomputed tables the way lanes do, instead of drawing per
	// sample. The parallel path always uses tables. With the same Key
	// and table mode, both paths produce bit-identical counters.
	UseSampleTable bool

	// TableSize overrides DefaultSampleTableSize when > 0.
	TableSize int
}

// SimulateBatch runs opts.Trials independent trials, each from the same
// starting quantity with its own fresh pipeline and its own derived seed,
// and reduces the per-trial counters into AggregateStats.
func (e *Engine) SimulateBatch(opts BatchOptions) (AggregateStats, error) {
	if opts.Trials < 1 {
		return AggregateStats{}, &ConfigError{Field: "Trials", Reason: "must be >= 1"}
	}
	key := opts.Key
	if key == 0 {
		key = NewBatchKey(time.Now().UnixNano())
	}

	start := time.Now()
	var perTrial []TrialCounters
	var err error
	if opts.Accelerator != nil {
		perTrial, err = e.runLanes(opts, key)
	} else {
		perTrial, err = e.runScalar(opts, key)
	}
	if err != nil {
		return AggregateStats{}, err
	}

	path := "scalar"
	if opts.Accelerator != nil {
		path = "parallel"
	}
	stats := reduce(perTrial)
	logrus.Debugf("batch done: trials=%d path=%s elapsed=%s", opts.Trials, path, time.Since(start))
	return stats, nil
}

// tableSize resolves the configured or default table length.
func (opts BatchOptions) tableSize() int {
	if opts.TableSize > 0 {
		return opts.TableSize
	}
	return DefaultSampleTableSize
}

// buildTables draws both batch-scoped sample tables. Done once per
// batch, before any lane starts; the tables are read-only afterwards.
func (e *Engine) buildTables(key BatchKey, size int) (traffic, jobLot *SampleTable, err error) {
	traffic, err = BuildSampleTable(e.traffic, size, rand.New(rand.NewSource(key.TableSeed("traffic"))))
	if err != nil {
		return nil, nil, err
	}
	jobLot, err = BuildSampleTable(e.jobLot, size, rand.New(rand.NewSource(key.TableSeed("job_lot"))))
	if err != nil {
		return nil, nil, err
	}
	return traffic, jobLot, nil
}

// runScalar executes trials sequentially on the calling goroutine.
func (e *Engine) runScalar(opts BatchOptions, key BatchKey) ([]TrialCounters, error) {
	perTrial := make([]TrialCounters, opts.Trials)

	if opts.UseSampleTable {
		traffic, jobLot, err := e.buildTables(key, opts.tableSize())
		if err != nil {
			return nil, err
		}
		for i := range perTrial {
			src := newTableSource(traffic, jobLot, key.TrialSeed(i))
			perTrial[i] = e.simulateTrial(opts.StartingQuantity, src)
		}
		return perTrial, nil
	}

	for i := range perTrial {
		src := &directSource{
			traffic: e.traffic,
			jobLot:  e.jobLot,
			rng:     rand.New(rand.NewSource(key.TrialSeed(i))),
		}
		perTrial[i] = e.simulateTrial(opts.StartingQuantity, src)
	}
	return perTrial, nil
}

// runLanes executes trials on the accelerator's lane pool. Each lane
// task is one full independent trial; lane i's counters land in the
// disjoint slot perTrial[i], so lanes never touch shared mutable state
// and the result is invariant to lane execution order.
func (e *Engine) runLanes(opts BatchOptions, key BatchKey) ([]TrialCounters, error) {
	acc := opts.Accelerator
	if err := acc.acquire(); err != nil {
		return nil, err
	}

	traffic, jobLot, err := e.buildTables(key, opts.tableSize())
	if err != nil {
		return nil, &AcceleratorError{Op: "build-table", Reason: err.Error()}
	}

	perTrial := make([]TrialCounters, opts.Trials)
	tasks := make(chan int)

	var wg sync.WaitGroup
	for lane := 0; lane < acc.Lanes(); lane++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				src := newTableSource(traffic, jobLot, key.TrialSeed(i))
				perTrial[i] = e.simulateTrial(opts.StartingQuantity, src)
			}
		}()
	}

	for i := 0; i < opts.Trials; i++ {
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	return perTrial, nil
}

// reduce sums per-trial counters (integer addition, order-independent)
// and summarizes the dispersion of per-trial transaction success rates.
func reduce(perTrial []TrialCounters) AggregateStats {
	stats := AggregateStats{
		Trials:   len(perTrial),
		PerTrial: perTrial,
	}
	rates := make([]float64, 0, len(perTrial))
	for _, c := range perTrial {
		stats.Add(c)
		if total := c.TotalTransactions(); total > 0 {
			rates = append(rates, float64(c.SuccessfulTransactions)/float64(total))
		}
	}
	if len(rates) > 0 {
		stats.TrialRateMean = stat.Mean(rates, nil)
	}
	if len(rates) > 1 {
		stats.TrialRateStdDev = stat.StdDev(rates, nil)
	}
	return stats
}
