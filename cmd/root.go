package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CraigKelly/mcrun/rand"
	"github.com/CraigKelly/mcrun/sampler"
)

var randomSeed int64
var sampleCount int
var chainCount int
var workerCount int
var progressStyle string
var monitorAddr string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcrun",
	Short: "Generic MCMC chain driver",
	Long: `mcrun drives iterative MCMC sampling for any sampler/model pair
satisfying its stepping contract. The binary runs a demonstration
random-walk sampler against a normal target:

  - Single chain or parallel multi-chain with deterministic seeding
  - Pluggable progress reporting (default, plain, disabled)
  - Optional expvar monitor over HTTP
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("mcrun\n")
		fmt.Printf("Rnd Seed: %d\n", randomSeed)
		fmt.Printf("Samples:  %d\n", sampleCount)
		fmt.Printf("Chains:   %d\n", chainCount)

		return demoRun()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.PersistentFlags().IntVarP(&sampleCount, "samples", "n", 5000, "Samples to draw per chain")
	rootCmd.PersistentFlags().IntVarP(&chainCount, "chains", "c", 1, "Independent chains to run")
	rootCmd.PersistentFlags().IntVarP(&workerCount, "workers", "w", 0, "Worker pool size for parallel chains (0 = all CPUs)")
	rootCmd.PersistentFlags().StringVarP(&progressStyle, "progress", "p", "default", "Progress style: default|plain|disabled")
	rootCmd.PersistentFlags().StringVarP(&monitorAddr, "monitor", "m", "", "Address for the expvar HTTP monitor (empty = off)")

	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// demoRun drives the demonstration random-walk sampler through the generic
// driver and prints per-chain summaries.
func demoRun() error {
	gen, err := rand.NewGenerator(randomSeed)
	if err != nil {
		return err
	}

	opts := sampler.DefaultOptions()
	opts.ProgressStyle = sampler.ProgressStyle(progressStyle)
	opts.Workers = workerCount

	mon := &monitor{}
	if monitorAddr != "" {
		if err := mon.Start(monitorAddr); err != nil {
			return err
		}
		defer mon.Stop()

		mon.Chains.Set(int64(chainCount))
		mon.SamplesPerChain.Set(int64(sampleCount))
	}

	mod := &normalModel{Mean: 0.0, StdDev: 1.0}
	start := time.Now()

	var chains []sampler.Chain
	if chainCount > 1 {
		chains, err = sampler.RunParallel(gen, mod, newWalkSampler(0.5), sampleCount, chainCount, opts)
	} else {
		var c sampler.Chain
		c, err = sampler.Run(gen, mod, newWalkSampler(0.5), sampleCount, opts)
		chains = []sampler.Chain{c}
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	if monitorAddr != "" {
		mon.RunTime.Set(elapsed.Seconds())
		mon.TotalSamples.Set(int64(sampleCount) * int64(chainCount))
	}

	fmt.Printf("Completed %d chain(s) in %v\n", len(chains), elapsed)
	for i, c := range chains {
		ts := c.(sampler.Transitions)
		mean, acc := summarize(ts)
		fmt.Printf("Chain %2d: n=%d mean=%+.4f accept=%.2f%%\n", i, len(ts), mean, acc*100.0)
	}

	return nil
}

// summarize reports sample mean and acceptance rate for a demo chain.
func summarize(ts sampler.Transitions) (float64, float64) {
	sum := 0.0
	accepted := 0
	for _, t := range ts {
		wt := t.(walkTrans)
		sum += wt.X
		if wt.Accepted {
			accepted++
		}
	}
	if len(ts) < 1 {
		return 0.0, 0.0
	}
	return sum / float64(len(ts)), float64(accepted) / float64(len(ts))
}
