// Command ic3 decides safety properties of AND-inverter-graph transition
// systems via property-directed reachability.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cbarrett/ic3go/aig"
	"github.com/cbarrett/ic3go/ic3"
	"github.com/cbarrett/ic3go/model"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose     bool
		verboseAll  bool
		ctg         bool
		verify      bool
		cav23       bool
		saveFrames  string
		randomSeed  int64
		haveRandom  bool
	)

	cmd := &cobra.Command{
		Use:           "ic3 <model.aig>",
		Short:         "Decide an AIG safety property via property-directed reachability.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verboseAll && !verbose {
				return fmt.Errorf("ic3: -V requires -v")
			}
			log := logrus.New()
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.InfoLevel)
			}
			if verboseAll {
				log.SetLevel(logrus.DebugLevel)
			}
			return run(args[0], log, runOptions{
				ctg:        ctg,
				verify:     verify,
				cav23:      cav23,
				saveFrames: saveFrames,
				randomSeed: randomSeedOrNil(haveRandom, randomSeed),
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&verbose, "v", "v", false, "verbose progress")
	flags.BoolVarP(&verboseAll, "V", "V", false, "verbose-all (requires -v)")
	flags.BoolVar(&ctg, "ctg", true, "enable CTG generalization")
	flags.BoolVar(&verify, "verify", false, "verify the invariant after SAFE")
	flags.BoolVar(&cav23, "cav23", false, "enable the CAV23 parent-activity heuristic")
	flags.StringVar(&saveFrames, "save-frames", "", "dump the final frame stack as JSON to this path")
	flags.Int64Var(&randomSeed, "random", 0, "seed random initial activity scores with N (the SAT solver itself is not randomized)")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		haveRandom = cmd.Flags().Changed("random")
		return nil
	}

	return cmd
}

func randomSeedOrNil(have bool, seed int64) *int64 {
	if !have {
		return nil
	}
	return &seed
}

type runOptions struct {
	ctg        bool
	verify     bool
	cav23      bool
	saveFrames string
	randomSeed *int64
}

func run(path string, log *logrus.Logger, opts runOptions) error {
	a, err := aig.FromFile(path)
	if err != nil {
		log.WithError(err).Error("reading AIG")
		return err
	}

	m, err := model.Build(a)
	if err != nil {
		log.WithError(err).Error("building transition model")
		return err
	}

	engine := ic3.NewEngine(m, ic3.Options{
		Ctg:        opts.ctg,
		Cav23:      opts.cav23,
		RandomSeed: opts.randomSeed,
		Log:        log,
	})
	engine.InstallSignalHandler()

	safe, cex := engine.Check()
	engine.PrintStatistics()

	if safe && opts.verify {
		if err := ic3.Verify(m, engine.Frames()); err != nil {
			log.WithError(err).Panic("invariant verification failed")
		}
	}
	if safe && opts.saveFrames != "" {
		if err := ic3.SaveFrames(opts.saveFrames, engine.Frames()); err != nil {
			log.WithError(err).Error("saving frames")
			return err
		}
	}

	fmt.Printf("result: %t\n", safe)
	if !safe && cex != nil {
		log.WithField("depth", cex.Depth).Info("counterexample reached the initial states")
	}
	return nil
}
