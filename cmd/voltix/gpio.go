package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-voltix/probe"
	"github.com/moffa90/go-voltix/protocol"
)

var (
	cmdGPIO = &cobra.Command{
		Use:   "gpio",
		Short: "Drive GPIO pins (Voltix Probe)",
		Long:  ``,
	}
	cmdGPIODir = &cobra.Command{
		Use:   "dir <pin> in|out",
		Short: "Set pin direction",
		Args:  cobra.ExactArgs(2),
		RunE:  runGPIODir,
	}
	cmdGPIOSet = &cobra.Command{
		Use:   "set <pin> high|low",
		Short: "Drive pin high or low",
		Args:  cobra.ExactArgs(2),
		RunE:  runGPIOSet,
	}
	cmdGPIOGet = &cobra.Command{
		Use:   "get <pin>",
		Short: "Read pin level",
		Args:  cobra.ExactArgs(1),
		RunE:  runGPIOGet,
	}
	cmdGPIOWatch = &cobra.Command{
		Use:   "watch <pin>",
		Short: "Poll pin level and print changes until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE:  runGPIOWatch,
	}
)

var gpioWatchInterval time.Duration

func init() {
	rootCmd.AddCommand(cmdGPIO)
	cmdGPIO.AddCommand(cmdGPIODir, cmdGPIOSet, cmdGPIOGet, cmdGPIOWatch)
	cmdGPIOWatch.Flags().DurationVarP(&gpioWatchInterval, "interval", "i", 100*time.Millisecond, "Poll interval")
}

func parsePin(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid pin %q", s)
	}
	return uint8(v), nil
}

func parseLevel(s string) (bool, error) {
	switch s {
	case "high", "1":
		return true, nil
	case "low", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid level %q (want high or low)", s)
}

func levelName(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

func runGPIODir(ccmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	dir, err := protocol.ParseGPIODir(args[1])
	if err != nil {
		return err
	}
	ctx := ccmd.Context()
	return withDevice(ctx, func(dev *probe.Device) error {
		return dev.GPIODir(ctx, pin, dir)
	})
}

func runGPIOSet(ccmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	high, err := parseLevel(args[1])
	if err != nil {
		return err
	}
	ctx := ccmd.Context()
	return withDevice(ctx, func(dev *probe.Device) error {
		return dev.GPIOSet(ctx, pin, high)
	})
}

func runGPIOGet(ccmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	ctx := ccmd.Context()
	return withDevice(ctx, func(dev *probe.Device) error {
		high, err := dev.GPIOGet(ctx, pin)
		if err != nil {
			return err
		}
		fmt.Fprintln(ccmd.OutOrStdout(), levelName(high))
		return nil
	})
}

func runGPIOWatch(ccmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	if gpioWatchInterval <= 0 {
		return fmt.Errorf("invalid interval %s", gpioWatchInterval)
	}

	ctx, stop := signal.NotifyContext(ccmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withServingDevice(ctx, func(dev *probe.Device) error {
		return watchPin(ctx, dev, pin, gpioWatchInterval, func(high bool) {
			fmt.Fprintf(ccmd.OutOrStdout(), "%s pin %d %s\n", time.Now().Format(time.RFC3339Nano), pin, levelName(high))
		})
	})
}

// watchPin reports the first level read and every change after it.
// It returns nil when ctx is cancelled.
func watchPin(ctx context.Context, dev *probe.Device, pin uint8, every time.Duration, report func(bool)) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last, seen bool
	for {
		high, err := dev.GPIOGet(ctx, pin)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if !seen || high != last {
			report(high)
			last, seen = high, true
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
