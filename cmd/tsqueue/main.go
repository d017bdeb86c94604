// Command tsqueue exercises the queue strategies from the command line.
//
// Usage:
//
//	tsqueue stress --strategy tsqueue --producers 8 --consumers 8 --items 100000
//	tsqueue bench -n 10000000 --size 1024
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const progName = "tsqueue"

var version = "dev"

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stressCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug messages")
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix(progName)
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exit("Error returned from command", err)
	}
}

func exit(msg string, err error) {
	fmt.Fprintln(os.Stderr, msg+":", err)
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   progName,
	Short: "Thread-safe FIFO queue toolkit",
	Long: `
tsqueue runs producer/consumer stress tests and micro benchmarks against
the queue strategies: the lock-based tsqueue, a bounded channel queue, and
a lock-free sharded ring.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}
