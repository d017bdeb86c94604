package main

import (
	"os"
	"os/signal"
	"time"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/randomizedcoder/tsqueue/internal/logutil"
	"github.com/randomizedcoder/tsqueue/internal/workload"
)

func init() {
	stressCmd.Flags().StringP("strategy", "s", strategyTSQueue, "Queue strategy, can be tsqueue, channel, or sharded")
	stressCmd.Flags().IntP("producers", "p", 4, "Number of producer goroutines")
	stressCmd.Flags().IntP("consumers", "c", 4, "Number of consumer goroutines")
	stressCmd.Flags().IntP("items", "i", 100_000, "Items pushed by each producer")
	stressCmd.Flags().Int("size", 1024, "Capacity for bounded strategies")
	stressCmd.Flags().Duration("progress", time.Second, "Interval between progress log lines")
	viper.BindPFlag("strategy", stressCmd.Flags().Lookup("strategy"))
	viper.BindPFlag("producers", stressCmd.Flags().Lookup("producers"))
	viper.BindPFlag("consumers", stressCmd.Flags().Lookup("consumers"))
	viper.BindPFlag("items", stressCmd.Flags().Lookup("items"))
	viper.BindPFlag("size", stressCmd.Flags().Lookup("size"))
	viper.BindPFlag("progress", stressCmd.Flags().Lookup("progress"))
}

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Run concurrent producers and consumers and verify delivery",
	Long: `Push tagged items from many producers, drain them with blocking consumers,
and fail if any item is lost, duplicated, or seen out of push order.
Interrupting the run stops the producers; consumers still drain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logutil.New(viper.GetBool("debug"))
		if err != nil {
			return errors.Trace(err)
		}
		defer logger.Sync()

		strategy := viper.GetString("strategy")
		cfg := workload.Config{
			Producers:        viper.GetInt("producers"),
			Consumers:        viper.GetInt("consumers"),
			PerProducer:      viper.GetInt("items"),
			ProgressInterval: viper.GetDuration("progress"),
			CheckOrder:       strategy != strategySharded,
		}
		q, err := newQueue[workload.Item](strategy, viper.GetInt("size"), cfg.Consumers, logger)
		if err != nil {
			return errors.Trace(err)
		}

		stop := workload.NewStopper()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-sig:
				logger.Warn("interrupted, stopping producers")
				stop.Stop()
			case <-done:
			}
		}()

		report, err := workload.Run(cfg, q, logger.With(zap.String("strategy", strategy)), stop)
		if err != nil {
			return errors.Trace(err)
		}
		return report.Verify()
	},
}
