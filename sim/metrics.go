// Tracks per-trial and batch-wide fulfillment statistics.

package sim

import (
	"fmt"
	"time"
)

// TrialCounters accumulates the four fulfillment counters over one
// 365-day trial, or their sum across a batch. int64 keeps a year of
// bounded demand (and any realistic batch of years) far from overflow.
type TrialCounters struct {
	SuccessfulTransactions int64 // customers served in full
	SuccessfulSales        int64 // units sold
	FailedTransactions     int64 // customers turned away
	FailedSales            int64 // units of demand lost
}

// Add accumulates o into c. Integer summation, so reduction order across
// lanes cannot change the result.
func (c *TrialCounters) Add(o TrialCounters) {
	c.SuccessfulTransactions += o.SuccessfulTransactions
	c.SuccessfulSales += o.SuccessfulSales
	c.FailedTransactions += o.FailedTransactions
	c.FailedSales += o.FailedSales
}

// TotalTransactions returns the number of customer arrivals, served or
// not.
func (c TrialCounters) TotalTransactions() int64 {
	return c.SuccessfulTransactions + c.FailedTransactions
}

// AggregateStats is the result of a batch: summed counters plus the
// dispersion of per-trial transaction success rates.
type AggregateStats struct {
	TrialCounters

	Trials int

	// PerTrial holds each trial's counters in trial order. Retained for
	// dispersion reporting; the aggregate above is their integer sum.
	PerTrial []TrialCounters

	// TrialRateMean and TrialRateStdDev summarize the per-trial
	// transaction success rates (trials with no demand excluded).
	TrialRateMean   float64
	TrialRateStdDev float64
}

// TransactionSuccessRate returns the fraction of customers served in
// full. ok is false when no customer arrived at all, in which case the
// rate is undefined and the value is 0; callers must not treat that 0 as
// a measured rate. The division is never performed on a zero denominator.
func (s AggregateStats) TransactionSuccessRate() (float64, bool) {
	total := s.TotalTransactions()
	if total == 0 {
		return 0, false
	}
	return float64(s.SuccessfulTransactions) / float64(total), true
}

// VolumeSuccessRate returns the fraction of requested units sold, with
// the same undefined-when-no-demand policy as TransactionSuccessRate.
func (s AggregateStats) VolumeSuccessRate() (float64, bool) {
	total := s.SuccessfulSales + s.FailedSales
	if total == 0 {
		return 0, false
	}
	return float64(s.SuccessfulSales) / float64(total), true
}

// Print displays aggregated statistics at the end of a batch.
func (s AggregateStats) Print(elapsed time.Duration) {
	fmt.Println("=== Fulfillment Statistics ===")
	fmt.Printf("Trials                   : %d\n", s.Trials)
	fmt.Printf("Successful transactions  : %d\n", s.SuccessfulTransactions)
	fmt.Printf("Successful sales (units) : %d\n", s.SuccessfulSales)
	fmt.Printf("Failed transactions      : %d\n", s.FailedTransactions)
	fmt.Printf("Failed sales (units)     : %d\n", s.FailedSales)
	if rate, ok := s.TransactionSuccessRate(); ok {
		fmt.Printf("Transaction success rate : %.4f\n", rate)
	} else {
		fmt.Println("Transaction success rate : undefined (no demand)")
	}
	if rate, ok := s.VolumeSuccessRate(); ok {
		fmt.Printf("Volume success rate      : %.4f\n", rate)
	} else {
		fmt.Println("Volume success rate      : undefined (no demand)")
	}
	if s.Trials > 1 {
		fmt.Printf("Per-trial rate mean      : %.4f (stddev %.4f)\n", s.TrialRateMean, s.TrialRateStdDev)
	}
	fmt.Printf("Elapsed                  : %s\n", elapsed)
}
