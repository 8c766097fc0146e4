package sim

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Engine owns a validated Config and the two demand distributions for
// its whole lifetime. It is immutable after NewEngine and safe to share
// across goroutines; all mutable trial state is local to each call.
type Engine struct {
	cfg     Config
	jobLot  *ZipfSampler
	traffic *ZipfSampler
}

// NewEngine validates cfg (after filling defaulted shapes) and builds
// the job-lot and traffic samplers. All configuration errors surface
// here; simulation itself has no failure mode.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	jobLot, err := NewZipfSampler(ZipfElements, cfg.JobLotShape)
	if err != nil {
		return nil, err
	}
	traffic, err := NewZipfSampler(ZipfElements, cfg.TrafficShape)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("engine configured: safety_stock=%d lead_time=%d order_quantity=%d shapes=(%.2f, %.2f)",
		cfg.SafetyStock, cfg.LeadTime, cfg.OrderQuantity, cfg.JobLotShape, cfg.TrafficShape)

	return &Engine{cfg: cfg, jobLot: jobLot, traffic: traffic}, nil
}

// Config returns the engine's (defaulted) configuration.
func (e *Engine) Config() Config { return e.cfg }

// trialState is the mutable per-trial state threaded through stepDay.
type trialState struct {
	stock    int64
	pipeline *ReplenishmentPipeline
}

// stepDay applies one day's transition: receive the truck due today,
// serve stochastic customer demand against on-hand stock, then place a
// reorder if stock fell below the safety threshold. Pure with respect to
// its inputs; both execution paths call this exact function. Reports
// whether a reorder was placed.
func (e *Engine) stepDay(day int, st *trialState, src demandSource, c *TrialCounters) bool {
	// A truck arrived.
	st.stock += st.pipeline.ArrivalDueToday(day)

	// This many customers arrive today.
	customers := src.NextTraffic()
	for i := int64(0); i < customers; i++ {
		// This customer wants this many. Lost-sale model: a customer who
		// cannot be served in full walks away, stock is untouched.
		request := src.NextJobLot()
		if st.stock >= request {
			c.SuccessfulTransactions++
			c.SuccessfulSales += request
			st.stock -= request
		} else {
			c.FailedTransactions++
			c.FailedSales += request
		}
	}

	// The day is over. Start making orders. Stock is strictly below the
	// threshold here, so the shortfall is always positive.
	if st.stock < e.cfg.SafetyStock {
		short := e.cfg.SafetyStock - st.stock
		orders := (short + e.cfg.OrderQuantity - 1) / e.cfg.OrderQuantity
		st.pipeline.Schedule(day, orders*e.cfg.OrderQuantity)
		return true
	}
	return false
}

// simulateTrial runs one full 365-day trial from startingQuantity,
// consuming samples from src. Deterministic given the source.
func (e *Engine) simulateTrial(startingQuantity int64, src demandSource) TrialCounters {
	st := trialState{
		stock:    startingQuantity,
		pipeline: NewReplenishmentPipeline(e.cfg.LeadTime),
	}
	var counters TrialCounters
	for day := 0; day < HorizonDays; day++ {
		e.stepDay(day, &st, src, &counters)
	}
	return counters
}

// SimulateOnce runs a single trial with fresh entropy and direct
// per-draw sampling.
func (e *Engine) SimulateOnce(startingQuantity int64) TrialCounters {
	return e.SimulateOnceSeeded(startingQuantity, time.Now().UnixNano())
}

// SimulateOnceSeeded runs a single trial with a caller-supplied seed.
// The same seed and configuration reproduce the same counters exactly.
func (e *Engine) SimulateOnceSeeded(startingQuantity int64, seed int64) TrialCounters {
	src := &directSource{
		traffic: e.traffic,
		jobLot:  e.jobLot,
		rng:     rand.New(rand.NewSource(seed)),
	}
	return e.simulateTrial(startingQuantity, src)
}
