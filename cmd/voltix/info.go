package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-voltix/probe"
	"github.com/moffa90/go-voltix/protocol"
)

var (
	cmdInfo = &cobra.Command{
		Use:   "info",
		Short: "Show device variant, capabilities and firmware version",
		Long:  ``,
		RunE:  runInfo,
	}
	cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print the firmware version",
		Long:  ``,
		RunE:  runVersion,
	}
)

func init() {
	rootCmd.AddCommand(cmdInfo)
	rootCmd.AddCommand(cmdVersion)
}

func runInfo(ccmd *cobra.Command, _ []string) error {
	ctx := ccmd.Context()
	out := ccmd.OutOrStdout()
	return withDevice(ctx, func(dev *probe.Device) error {
		version, err := dev.FirmwareVersion(ctx)
		if err != nil {
			return err
		}

		caps := make([]string, 0, len(probe.Operations))
		for _, op := range dev.Capabilities() {
			caps = append(caps, string(op))
		}

		fmt.Fprintf(out, "device:       %s\n", dev.Variant())
		fmt.Fprintf(out, "firmware:     %s\n", version)
		fmt.Fprintf(out, "capabilities: %s\n", strings.Join(caps, ", "))
		fmt.Fprintf(out, "library:      %s\n", protocol.LibraryVersion)
		return nil
	})
}

func runVersion(ccmd *cobra.Command, _ []string) error {
	ctx := ccmd.Context()
	return withDevice(ctx, func(dev *probe.Device) error {
		version, err := dev.FirmwareVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(ccmd.OutOrStdout(), version)
		return nil
	})
}
