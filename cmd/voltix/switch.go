package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-voltix/probe"
)

var (
	cmdPower = &cobra.Command{
		Use:       "power on|off",
		Short:     "Switch target power",
		Long:      ``,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      runSwitch((*probe.Device).Power),
	}
	cmdBypass = &cobra.Command{
		Use:       "bypass on|off",
		Short:     "Switch the electrical bypass (Voltix Board)",
		Long:      ``,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE:      runSwitch((*probe.Device).Bypass),
	}
)

func init() {
	rootCmd.AddCommand(cmdPower)
	rootCmd.AddCommand(cmdBypass)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid state %q (want on or off)", s)
}

func runSwitch(op func(*probe.Device, context.Context, bool) ([]byte, error)) func(*cobra.Command, []string) error {
	return func(ccmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		ctx := ccmd.Context()
		return withDevice(ctx, func(dev *probe.Device) error {
			data, err := op(dev, ctx, on)
			if err != nil {
				return err
			}
			fmt.Fprintf(ccmd.OutOrStdout(), "%s %s: % x\n", ccmd.Name(), args[0], data)
			return nil
		})
	}
}
