package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/restocksim/restocksim/sim"
)

var (
	// CLI flags for the inventory policy
	safetyStock   int64   // Reorder trigger threshold
	leadTime      int     // Days between order placement and arrival
	orderQuantity int64   // Reorder batch size
	jobLotShape   float64 // Zipf exponent for per-customer order size
	trafficShape  float64 // Zipf exponent for per-day customer count

	// CLI flags for batch execution
	startingQuantity int64  // On-hand stock at day zero
	trials           int    // Number of independent one-year trials
	seed             int64  // Master seed (0 = fresh entropy per run)
	mode             string // Execution path: "parallel" or "scalar"
	lanes            int    // Lane count for the parallel path (0 = one per CPU)
	tableSize        int    // Precomputed sample table length (0 = default)
	logLevel         string // Log verbosity level

	// CLI flags for scenario presets
	scenarioFile string // Path to the scenarios YAML file
	scenarioName string // Named preset to load from the scenarios file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "restocksim",
	Short: "Monte Carlo simulator for periodic-review inventory policies",
}

// runCmd executes a batch of trials using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the inventory simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if scenarioName != "" {
			scenario, err := LoadScenario(scenarioFile, scenarioName)
			if err != nil {
				logrus.Fatalf("Failed to load scenario %q: %v", scenarioName, err)
			}
			applyScenario(scenario)
		}

		engine, err := sim.NewEngine(sim.Config{
			SafetyStock:   safetyStock,
			LeadTime:      leadTime,
			OrderQuantity: orderQuantity,
			JobLotShape:   jobLotShape,
			TrafficShape:  trafficShape,
		})
		if err != nil {
			logrus.Fatalf("Configuration rejected: %v", err)
		}

		logrus.Infof("Starting %d trial(s): safety_stock=%d lead_time=%d order_quantity=%d start=%d",
			trials, safetyStock, leadTime, orderQuantity, startingQuantity)

		if trials == 1 {
			runSingle(engine)
			return
		}
		runBatch(engine)
	},
}

// runSingle runs one trial and prints its raw counters.
func runSingle(engine *sim.Engine) {
	var counters sim.TrialCounters
	if seed == 0 {
		counters = engine.SimulateOnce(startingQuantity)
	} else {
		counters = engine.SimulateOnceSeeded(startingQuantity, seed)
	}
	fmt.Println("=== Trial Counters ===")
	fmt.Printf("Successful transactions  : %d\n", counters.SuccessfulTransactions)
	fmt.Printf("Successful sales (units) : %d\n", counters.SuccessfulSales)
	fmt.Printf("Failed transactions      : %d\n", counters.FailedTransactions)
	fmt.Printf("Failed sales (units)     : %d\n", counters.FailedSales)
}

// runBatch runs the full batch on the selected execution path. When the
// accelerator cannot be acquired the scalar path runs instead, so a
// backend failure degrades throughput, never availability.
func runBatch(engine *sim.Engine) {
	opts := sim.BatchOptions{
		StartingQuantity: startingQuantity,
		Trials:           trials,
		Key:              sim.NewBatchKey(seed),
		TableSize:        tableSize,
	}

	if mode == "parallel" {
		laneCount := lanes
		if laneCount == 0 {
			laneCount = sim.DefaultLanes()
		}
		acc, err := sim.NewAccelerator(laneCount)
		if err != nil {
			logrus.Warnf("Accelerator unavailable (%v); falling back to scalar path", err)
		} else {
			defer acc.Close()
			opts.Accelerator = acc
		}
	} else if mode != "scalar" {
		logrus.Fatalf("Unknown mode %q (want scalar or parallel)", mode)
	}

	startTime := time.Now()
	stats, err := engine.SimulateBatch(opts)
	if err != nil {
		logrus.Fatalf("Batch failed: %v", err)
	}
	stats.Print(time.Since(startTime))
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&safetyStock, "safety-stock", 10, "Reorder when on-hand stock falls below this threshold")
	runCmd.Flags().IntVar(&leadTime, "lead-time", 10, "Days between placing an order and the truck arriving")
	runCmd.Flags().Int64Var(&orderQuantity, "order-quantity", 7, "Orders are placed in multiples of this batch size")
	runCmd.Flags().Float64Var(&jobLotShape, "job-lot-shape", sim.DefaultJobLotShape, "Zipf exponent for per-customer order size")
	runCmd.Flags().Float64Var(&trafficShape, "traffic-shape", sim.DefaultTrafficShape, "Zipf exponent for per-day customer count")

	runCmd.Flags().Int64Var(&startingQuantity, "starting-quantity", 10, "On-hand stock at day zero of every trial")
	runCmd.Flags().IntVar(&trials, "trials", 10000, "Number of independent one-year trials")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all randomness (0 = fresh entropy)")
	runCmd.Flags().StringVar(&mode, "mode", "parallel", "Execution path (scalar, parallel)")
	runCmd.Flags().IntVar(&lanes, "lanes", 0, "Parallel lane count (0 = one per CPU)")
	runCmd.Flags().IntVar(&tableSize, "table-size", 0, "Precomputed sample table length (0 = 16M)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&scenarioFile, "config", "scenarios.yaml", "Path to the scenarios YAML file")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario preset to load")

	rootCmd.AddCommand(runCmd)
}
