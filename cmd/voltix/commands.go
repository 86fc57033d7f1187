package main

import "github.com/spf13/cobra"

var (
	rootCmd = &cobra.Command{
		Use:           "voltix",
		Short:         "Voltix debug probe tool.",
		Long:          `Inspect and drive Voltix Board and Voltix Probe devices over USB.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

var rootConf string
var rootDebug bool
var rootSimulate string
var rootMetrics string
var rootSerial string

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConf, "conf", "c", "", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&rootDebug, "debug", "d", false, "Debug logging")
	rootCmd.PersistentFlags().StringVarP(&rootSimulate, "simulate", "s", "", "Use a simulated device (board or probe)")
	rootCmd.PersistentFlags().StringVarP(&rootMetrics, "metrics", "m", "", "Prom metrics address (served by gpio watch)")
	rootCmd.PersistentFlags().StringVar(&rootSerial, "serial", "", "Serial number of the device to open")
}

func Execute() error {
	return rootCmd.Execute()
}
